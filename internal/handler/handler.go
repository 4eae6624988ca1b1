/**
* Name: 			handler.go
* Description: 		핸들러 공통 의존성과 응답 헬퍼
* Workflow: 		검증 실패 → flash + redirect, 데이터 계층 오류 → ErrorHandler 로 전달
 */
package handler

import (
	"context"
	"net/http"

	"ProfileBoard/internal/apperror"
	"ProfileBoard/internal/logger"
	"ProfileBoard/internal/models"
	"ProfileBoard/internal/session"

	"github.com/gin-gonic/gin"
)

// UserStore is the data layer the handlers orchestrate.
type UserStore interface {
	CreateUser(ctx context.Context, u models.User) (int64, error)
	GetUserByName(ctx context.Context, name string) (models.User, error)
	GetUserByID(ctx context.Context, id int64) (models.User, error)
	UpdateUserInfoByID(ctx context.Context, id int64, upd models.UserUpdate) error
}

type Options struct {
	// 아바타 저장 디렉터리
	UploadDir      string
	MaxAvatarBytes int64
	InviteRequired bool
}

type Handler struct {
	users UserStore
	opts  Options
	log   *logger.Logger
}

func New(users UserStore, opts Options, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{users: users, opts: opts, log: log.Named("handler")}
}

// render pops pending flashes into the page data.
func render(c *gin.Context, name, title string, data gin.H) {
	sess := session.FromContext(c)
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["user"] = sess.User()
	data["flashes"] = sess.Flashes()
	c.HTML(http.StatusOK, name, data)
}

func redirectWithFlash(c *gin.Context, kind, message, to string) {
	session.FromContext(c).AddFlash(kind, message)
	c.Redirect(http.StatusFound, to)
}

// rejectInput reports a ValidationError back to the user.
func rejectInput(c *gin.Context, err *apperror.ValidationError, fallback string) {
	to := err.RedirectTo
	if to == "" {
		to = fallback
	}
	redirectWithFlash(c, session.FlashError, err.Message, to)
}

// fail forwards a data-layer error to the generic error handler.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	_ = c.Error(apperror.System(op, err))
	c.Abort()
}
