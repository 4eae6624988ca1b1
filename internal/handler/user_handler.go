/**
* Name: 			user_handler.go
* Description: 		로그인 사용자의 프로필 조회 및 수정 핸들러
* Workflow: 		입력 검증 → DB 갱신 → 세션 갱신 → flash 와 함께 /user 로 리다이렉트
 */
package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"ProfileBoard/internal/auth"
	"ProfileBoard/internal/models"
	"ProfileBoard/internal/session"
	"ProfileBoard/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const profilePath = "/user"

// Profile godoc
// @Summary      프로필 조회
// @Description  세션의 사용자 ID로 사용자 정보를 조회하여 프로필 페이지를 렌더링합니다.
// @Tags         User
// @Produce      html
// @Success      200  {string}  string  "프로필 페이지"
// @Failure      302  {string}  string  "로그인되지 않음, /signin 으로 이동"
// @Failure      500  {string}  string  "서버 오류 페이지"
// @Router       /user [get]
func (h *Handler) Profile(c *gin.Context) {
	sess := session.FromContext(c)
	current := sess.User()

	user, err := h.users.GetUserByID(c.Request.Context(), current.ID)
	if errors.Is(err, storage.ErrUserNotFound) {
		sess.SetUser(nil)
		redirectWithFlash(c, session.FlashError, "未登录", signinPath)
		return
	}
	if err != nil {
		h.fail(c, "GetUserByID", err)
		return
	}
	// 세션 저장이 실패했던 경우 DB 기준으로 맞춤
	if fresh := user.Session(); *fresh != *current {
		sess.SetUser(fresh)
	}
	render(c, "user.tmpl", "个人主页", gin.H{"profile": user})
}

// UpdateName godoc
// @Summary      사용자명 변경
// @Description  1-10자 사용자명으로 변경합니다. 결과는 flash 메시지로 전달됩니다.
// @Tags         User
// @Accept       x-www-form-urlencoded
// @Param        name  formData  string  true  "새 사용자명 (1-10자)"
// @Success      302   {string}  string  "/user 로 리다이렉트"
// @Failure      500   {string}  string  "서버 오류 페이지"
// @Router       /user/name [post]
func (h *Handler) UpdateName(c *gin.Context) {
	sess := session.FromContext(c)
	current := sess.User()

	name, verr := validateName(c.PostForm("name"))
	if verr != nil {
		rejectInput(c, verr, profilePath)
		return
	}

	err := h.users.UpdateUserInfoByID(c.Request.Context(), current.ID, models.UserUpdate{Name: &name})
	if errors.Is(err, storage.ErrNameExists) {
		redirectWithFlash(c, session.FlashError, msgNameTaken, profilePath)
		return
	}
	if err != nil {
		h.fail(c, "UpdateUserInfoByID", err)
		return
	}

	current.Name = name
	sess.SetUser(current)
	h.log.Info("user name updated", "user_id", current.ID, "name", name)
	redirectWithFlash(c, session.FlashSuccess, "修改用户名成功", profilePath)
}

// UpdatePassword godoc
// @Summary      비밀번호 변경
// @Description  기존 비밀번호를 확인한 뒤 새 비밀번호(6자 이상)로 변경합니다.
// @Tags         User
// @Accept       x-www-form-urlencoded
// @Param        oldPassword  formData  string  true  "기존 비밀번호"
// @Param        newPassword  formData  string  true  "새 비밀번호 (6자 이상)"
// @Param        rePassword   formData  string  true  "새 비밀번호 확인"
// @Success      302          {string}  string  "/user 로 리다이렉트"
// @Failure      500          {string}  string  "서버 오류 페이지"
// @Router       /user/password [post]
func (h *Handler) UpdatePassword(c *gin.Context) {
	sess := session.FromContext(c)
	current := sess.User()

	oldPassword := c.PostForm("oldPassword")
	newPassword := c.PostForm("newPassword")
	rePassword := c.PostForm("rePassword")
	if oldPassword == "" || newPassword == "" || rePassword == "" {
		redirectWithFlash(c, session.FlashError, msgPasswordEmpty, profilePath)
		return
	}
	if verr := validateNewPassword(newPassword, rePassword); verr != nil {
		rejectInput(c, verr, profilePath)
		return
	}

	user, err := h.users.GetUserByID(c.Request.Context(), current.ID)
	if err != nil {
		h.fail(c, "GetUserByID", err)
		return
	}
	ok, err := auth.CheckPassword(user.PasswordHash, oldPassword)
	if err != nil {
		h.fail(c, "CheckPassword", err)
		return
	}
	if !ok {
		redirectWithFlash(c, session.FlashError, msgOldPassword, profilePath)
		return
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		h.fail(c, "HashPassword", err)
		return
	}
	if err := h.users.UpdateUserInfoByID(c.Request.Context(), current.ID, models.UserUpdate{PasswordHash: &hash}); err != nil {
		h.fail(c, "UpdateUserInfoByID", err)
		return
	}

	h.log.Info("user password updated", "user_id", current.ID)
	redirectWithFlash(c, session.FlashSuccess, "修改密码成功", profilePath)
}

// UpdateAvatar godoc
// @Summary      아바타 변경
// @Description  업로드한 이미지 파일을 새 아바타로 저장합니다.
// @Tags         User
// @Accept       multipart/form-data
// @Param        avatar  formData  file    true  "아바타 이미지 (jpg, png, gif, webp)"
// @Success      302     {string}  string  "/user 로 리다이렉트"
// @Failure      500     {string}  string  "서버 오류 페이지"
// @Router       /user/avatar [post]
func (h *Handler) UpdateAvatar(c *gin.Context) {
	sess := session.FromContext(c)
	current := sess.User()

	file, _ := c.FormFile("avatar")
	if verr := validateAvatar(file, h.opts.MaxAvatarBytes); verr != nil {
		rejectInput(c, verr, profilePath)
		return
	}

	avatar, err := h.saveAvatar(c, file)
	if err != nil {
		h.fail(c, "saveAvatar", err)
		return
	}
	if err := h.users.UpdateUserInfoByID(c.Request.Context(), current.ID, models.UserUpdate{Avatar: &avatar}); err != nil {
		h.removeAvatar(avatar)
		h.fail(c, "UpdateUserInfoByID", err)
		return
	}

	current.Avatar = avatar
	sess.SetUser(current)
	h.log.Info("user avatar updated", "user_id", current.ID, "avatar", avatar)
	redirectWithFlash(c, session.FlashSuccess, "修改头像成功", profilePath)
}

// UpdateBio godoc
// @Summary      자기소개 변경
// @Description  1-30자 자기소개로 변경합니다.
// @Tags         User
// @Accept       x-www-form-urlencoded
// @Param        bio  formData  string  true  "자기소개 (1-30자)"
// @Success      302  {string}  string  "/user 로 리다이렉트"
// @Failure      500  {string}  string  "서버 오류 페이지"
// @Router       /user/bio [post]
func (h *Handler) UpdateBio(c *gin.Context) {
	sess := session.FromContext(c)
	current := sess.User()

	bio, verr := validateBio(c.PostForm("bio"))
	if verr != nil {
		rejectInput(c, verr, profilePath)
		return
	}

	if err := h.users.UpdateUserInfoByID(c.Request.Context(), current.ID, models.UserUpdate{Bio: &bio}); err != nil {
		h.fail(c, "UpdateUserInfoByID", err)
		return
	}

	current.Bio = bio
	sess.SetUser(current)
	h.log.Info("user bio updated", "user_id", current.ID)
	redirectWithFlash(c, session.FlashSuccess, "修改个人签名成功", profilePath)
}

// saveAvatar stores the upload under a random name and returns the last
// segment of the saved path.
func (h *Handler) saveAvatar(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.opts.UploadDir, 0755); err != nil {
		return "", err
	}
	dst := filepath.Join(h.opts.UploadDir, uuid.New().String()+strings.ToLower(filepath.Ext(file.Filename)))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return filepath.Base(dst), nil
}

func (h *Handler) removeAvatar(avatar string) {
	if err := os.Remove(filepath.Join(h.opts.UploadDir, avatar)); err != nil && !os.IsNotExist(err) {
		h.log.Warn("failed to remove avatar file", "avatar", avatar, "error", err)
	}
}

// Index sends visitors to their profile.
func (h *Handler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, profilePath)
}
