package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/postly/postly/internal/pkg/jwt"
	"github.com/postly/postly/internal/pkg/response"
)

const (
	ContextUserIDKey   = "user_id"
	ContextEmailKey    = "user_email"
	ContextVerifiedKey = "user_verified"
	clientHeaderKey    = "client"
	clientNonBrowser   = "not-browser"
	authCookieName     = "Authorization"
)

// Auth extracts the bearer token either from the authorization header
// (non-browser clients signal themselves with "client: not-browser") or from
// the Authorization cookie. Every failure path terminates the request.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerValue(c)
		if raw == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization")
			c.Abort()
			return
		}
		parts := strings.SplitN(raw, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, http.StatusUnauthorized, "invalid authorization")
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(parts[1], secret)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextEmailKey, claims.Email)
		c.Set(ContextVerifiedKey, claims.Verified)
		c.Next()
	}
}

func bearerValue(c *gin.Context) string {
	if c.GetHeader(clientHeaderKey) == clientNonBrowser {
		return c.GetHeader("Authorization")
	}
	cookie, err := c.Cookie(authCookieName)
	if err != nil {
		return ""
	}
	return cookie
}
