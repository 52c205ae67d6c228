package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const ActingUserKey = "acting_user"

// ActingUser resolves who is making the change. Authentication is delegated
// to the hosting platform, which injects the user into a trusted header;
// when the header is absent the configured fallback is used, mirroring the
// UNKNOWN_USER the dashboard shows when the session user cannot be read.
func ActingUser(header, fallback string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := strings.TrimSpace(c.GetHeader(header))
		if user == "" {
			user = fallback
		}
		c.Set(ActingUserKey, user)
		c.Next()
	}
}
