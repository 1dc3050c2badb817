package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/mediaconnect/doctor-invites/pkg/i18n"
)

// Language stores the resolved request language on the request context.
func Language() gin.HandlerFunc {
	return func(c *gin.Context) {
		tag := i18n.ResolveTag(c.Request)
		c.Request = c.Request.WithContext(i18n.WithTag(c.Request.Context(), tag))
		c.Next()
	}
}
