package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// RequestLogger logs one line per request. Server errors are logged at error
// level.
func RequestLogger(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()

		status := c.Writer.Status()
		l := level.Info(logger)
		if status >= 500 {
			l = level.Error(logger)
		}
		l.Log(
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"took", time.Since(begin),
			"errors", c.Errors.ByType(gin.ErrorTypePrivate).String(),
		)
	}
}
