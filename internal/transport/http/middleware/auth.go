package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const errUnauthorized = "Unauthorized"

// verifier is the slice of auth.TokenManager the middleware needs.
type verifier interface {
	Verify(raw string) (string, error)
}

// Auth validates a Bearer JWT and sets "userID" in the gin context.
// Missing header, wrong scheme, bad signature and expired token all
// produce the identical 401 so a caller learns nothing about why.
func Auth(tokens verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
