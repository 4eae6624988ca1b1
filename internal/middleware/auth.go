package middleware

import (
	"net/http"

	"ProfileBoard/internal/session"

	"github.com/gin-gonic/gin"
)

// CheckLogin 로그인하지 않은 사용자를 /signin 으로 보냄
func CheckLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.FromContext(c)
		if sess.User() == nil {
			sess.AddFlash(session.FlashError, "未登录")
			c.Redirect(http.StatusFound, "/signin")
			c.Abort()
			return
		}
		c.Set("user_id", sess.User().ID)
		c.Next()
	}
}

// CheckNotLogin 이미 로그인한 사용자가 로그인/회원가입 페이지에 접근하는 것을 막음
func CheckNotLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.FromContext(c)
		if sess.User() != nil {
			sess.AddFlash(session.FlashError, "已登录")
			c.Redirect(http.StatusFound, "/user")
			c.Abort()
			return
		}
		c.Next()
	}
}
