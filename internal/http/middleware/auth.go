package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/civicpulse/backend/internal/auth"
)

const sessionKey = "session"

// RequireSession parses the bearer token into an auth.Session and rejects
// requests whose role is not in the allowed set.
func RequireSession(issuer auth.TokenIssuer, roles ...auth.Role) gin.HandlerFunc {
	allowed := map[auth.Role]bool{}
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			abortUnauthorized(c)
			return
		}

		sess, err := issuer.Parse(token)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		if len(allowed) > 0 && !allowed[sess.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient role",
				},
			})
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// SessionFrom returns the session installed by RequireSession.
func SessionFrom(c *gin.Context) auth.Session {
	v, _ := c.Get(sessionKey)
	sess, _ := v.(auth.Session)
	return sess
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "Invalid or missing credentials",
		},
	})
}
