/**
* Name: 			auth_handler.go
* Description: 		회원가입, 로그인, 로그아웃 핸들러
* Workflow: 		폼 검증 → 사용자 생성/조회 → 세션 갱신 → 리다이렉트
 */
package handler

import (
	"errors"
	"net/http"

	"ProfileBoard/internal/auth"
	"ProfileBoard/internal/models"
	"ProfileBoard/internal/session"
	"ProfileBoard/internal/storage"

	"github.com/gin-gonic/gin"
)

const (
	signupPath = "/signup"
	signinPath = "/signin"
)

func (h *Handler) SignupPage(c *gin.Context) {
	render(c, "signup.tmpl", "注册", gin.H{"inviteRequired": h.opts.InviteRequired})
}

// Signup godoc
// @Summary      회원가입 (Signup)
// @Description  새로운 사용자 계정을 생성하고 바로 로그인합니다.
// @Tags         Auth
// @Accept       multipart/form-data
// @Param        name        formData  string  true   "사용자명 (1-10자)"
// @Param        password    formData  string  true   "비밀번호 (6자 이상)"
// @Param        rePassword  formData  string  true   "비밀번호 확인"
// @Param        gender      formData  string  true   "성별 (m, f, x)"
// @Param        bio         formData  string  true   "자기소개 (1-30자)"
// @Param        avatar      formData  file    true   "아바타 이미지"
// @Param        inviteCode  formData  string  false  "초대 코드 (설정된 경우)"
// @Success      302  {string}  string  "성공 시 /user, 실패 시 /signup 으로 리다이렉트"
// @Failure      429  {string}  string  "요청 과다"
// @Failure      500  {string}  string  "서버 오류 페이지"
// @Router       /signup [post]
func (h *Handler) Signup(c *gin.Context) {
	name, verr := validateName(c.PostForm("name"))
	if verr != nil {
		rejectInput(c, verr, signupPath)
		return
	}
	gender := c.PostForm("gender")
	if verr := validateGender(gender); verr != nil {
		rejectInput(c, verr, signupPath)
		return
	}
	bio, verr := validateBio(c.PostForm("bio"))
	if verr != nil {
		rejectInput(c, verr, signupPath)
		return
	}
	file, _ := c.FormFile("avatar")
	if verr := validateAvatar(file, h.opts.MaxAvatarBytes); verr != nil {
		rejectInput(c, verr, signupPath)
		return
	}
	password := c.PostForm("password")
	if verr := validateNewPassword(password, c.PostForm("rePassword")); verr != nil {
		rejectInput(c, verr, signupPath)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		h.fail(c, "HashPassword", err)
		return
	}
	avatar, err := h.saveAvatar(c, file)
	if err != nil {
		h.fail(c, "saveAvatar", err)
		return
	}

	user := models.User{
		Name:         name,
		PasswordHash: hash,
		Avatar:       avatar,
		Gender:       gender,
		Bio:          bio,
	}
	user.ID, err = h.users.CreateUser(c.Request.Context(), user)
	if err != nil {
		h.removeAvatar(avatar)
		if errors.Is(err, storage.ErrNameExists) {
			redirectWithFlash(c, session.FlashError, msgNameTaken, signupPath)
			return
		}
		h.fail(c, "CreateUser", err)
		return
	}

	if err := session.Renew(c); err != nil {
		h.fail(c, "session.Renew", err)
		return
	}
	session.FromContext(c).SetUser(user.Session())
	h.log.Info("user signed up", "user_id", user.ID, "name", user.Name)
	redirectWithFlash(c, session.FlashSuccess, "注册成功", profilePath)
}

func (h *Handler) SigninPage(c *gin.Context) {
	render(c, "signin.tmpl", "登录", nil)
}

// Signin godoc
// @Summary      로그인 (Signin)
// @Description  사용자명과 비밀번호로 로그인하고 세션 쿠키를 발급받습니다.
// @Tags         Auth
// @Accept       x-www-form-urlencoded
// @Param        name      formData  string  true  "사용자명"
// @Param        password  formData  string  true  "비밀번호"
// @Success      302  {string}  string  "성공 시 /user, 실패 시 /signin 으로 리다이렉트"
// @Failure      429  {string}  string  "요청 과다"
// @Failure      500  {string}  string  "서버 오류 페이지"
// @Router       /signin [post]
func (h *Handler) Signin(c *gin.Context) {
	name := c.PostForm("name")
	password := c.PostForm("password")

	user, err := h.users.GetUserByName(c.Request.Context(), name)
	if errors.Is(err, storage.ErrUserNotFound) {
		redirectWithFlash(c, session.FlashError, msgUserNotFound, signinPath)
		return
	}
	if err != nil {
		h.fail(c, "GetUserByName", err)
		return
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		h.fail(c, "CheckPassword", err)
		return
	}
	if !ok {
		redirectWithFlash(c, session.FlashError, msgWrongPassword, signinPath)
		return
	}

	if err := session.Renew(c); err != nil {
		h.fail(c, "session.Renew", err)
		return
	}
	session.FromContext(c).SetUser(user.Session())
	h.log.Info("user signed in", "user_id", user.ID)
	redirectWithFlash(c, session.FlashSuccess, "登录成功", profilePath)
}

// Signout godoc
// @Summary      로그아웃 (Signout)
// @Tags         Auth
// @Success      302  {string}  string  "/signin 으로 리다이렉트"
// @Router       /signout [get]
func (h *Handler) Signout(c *gin.Context) {
	sess := session.FromContext(c)
	sess.SetUser(nil)
	redirectWithFlash(c, session.FlashSuccess, "登出成功", signinPath)
}

// Health godoc
// @Summary      헬스 체크
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
