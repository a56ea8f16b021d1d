package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"battleships/internal/models"
	"battleships/internal/validation"
)

// IdentityHeader carries the caller's email, set by the authenticating gateway in front of the API
const IdentityHeader = "X-User-Email"

const identityKey = "identity"

// Identity resolves the caller from the gateway header. Requests without the
// header pass through anonymous; a malformed header is rejected.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.GetHeader(IdentityHeader))
		if email == "" {
			c.Next()
			return
		}
		if err := validation.ValidateEmail(email); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"code":    "invalid_identity",
				"message": err.Error(),
			})
			return
		}
		c.Set(identityKey, models.Identity{Email: strings.ToLower(email)})
		c.Next()
	}
}

// IdentityFrom returns the caller's identity; the zero value means anonymous
func IdentityFrom(c *gin.Context) models.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(models.Identity); ok {
			return id
		}
	}
	return models.Identity{}
}
