package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/summer-school-api/internal/models"
	"github.com/noah-isme/summer-school-api/internal/service"
	appErrors "github.com/noah-isme/summer-school-api/pkg/errors"
	"github.com/noah-isme/summer-school-api/pkg/response"
)

// AuthHandler exposes the session token endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// CreateToken godoc
// @Summary Issue a session token for the supplied identity
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.TokenRequest true "Identity payload"
// @Success 200 {object} models.TokenResponse
// @Router /jwt [post]
func (h *AuthHandler) CreateToken(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	token, err := h.auth.IssueToken(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, token)
}
