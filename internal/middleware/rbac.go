package middleware

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/summer-school-api/internal/models"
	appErrors "github.com/noah-isme/summer-school-api/pkg/errors"
	"github.com/noah-isme/summer-school-api/pkg/response"
)

type roleReader interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// RequireRole gates a route on the caller's STORED role. The role is always
// re-read from the user store: the token carries identity only, so a stale
// or forged claim cannot escalate privilege.
func RequireRole(users roleReader, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrMissingCredential)
			c.Abort()
			return
		}
		claims := claimsValue.(*models.TokenClaims)

		user, err := users.FindByEmail(c.Request.Context(), claims.Email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				response.Error(c, appErrors.ErrForbidden)
			} else {
				response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user role"))
			}
			c.Abort()
			return
		}

		if user.Role != role {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
