package middleware

import (
	"net/http"

	"ProfileBoard/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the error page for errors handlers forwarded with
// c.Error. Handlers must not write a response when they forward one.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		log.Error("unhandled error",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		if c.Writer.Written() {
			return
		}
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{
			"title": "服务器错误",
		})
	}
}
