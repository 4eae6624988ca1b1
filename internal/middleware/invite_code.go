package middleware

import (
	"crypto/subtle"
	"net/http"

	"ProfileBoard/internal/session"

	"github.com/gin-gonic/gin"
)

// InviteCode 회원가입 폼의 inviteCode 필드 검사, code 가 비어 있으면 통과
func InviteCode(code string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if code == "" {
			c.Next()
			return
		}
		clientCode := c.PostForm("inviteCode")
		if subtle.ConstantTimeCompare([]byte(clientCode), []byte(code)) != 1 {
			session.FromContext(c).AddFlash(session.FlashError, "邀请码错误")
			c.Redirect(http.StatusFound, "/signup")
			c.Abort()
			return
		}
		c.Next()
	}
}
