package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/summer-school-api/internal/models"
	appErrors "github.com/noah-isme/summer-school-api/pkg/errors"
	"github.com/noah-isme/summer-school-api/pkg/response"
)

// SelfMatch requires the authenticated identity to equal the :email path
// parameter. It guards against a valid token being replayed against another
// account and must run before any data access.
func SelfMatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrMissingCredential)
			c.Abort()
			return
		}
		claims := claimsValue.(*models.TokenClaims)

		pathEmail := c.Param("email")
		if pathEmail == "" || !strings.EqualFold(pathEmail, claims.Email) {
			response.Error(c, appErrors.ErrAccessDenied)
			c.Abort()
			return
		}

		c.Next()
	}
}
