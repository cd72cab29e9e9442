package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/summer-school-api/internal/service"
	appErrors "github.com/noah-isme/summer-school-api/pkg/errors"
	"github.com/noah-isme/summer-school-api/pkg/response"
)

// PaymentHandler exposes the card payment endpoints.
type PaymentHandler struct {
	payments *service.PaymentService
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateIntent godoc
// @Summary Authorize a card payment with the gateway
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body service.PaymentIntentRequest true "Amount payload"
// @Success 200 {object} service.PaymentIntentResponse
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req service.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	intent, err := h.payments.CreateIntent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, intent)
}

// Settle godoc
// @Summary Record a confirmed payment and settle the enrollment
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body service.SettleRequest true "Settlement payload"
// @Success 200 {object} service.SettleResponse
// @Router /payments [post]
func (h *PaymentHandler) Settle(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrMissingCredential)
		return
	}
	var req service.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	// The payer is always the authenticated caller, not whatever the body says.
	req.Email = claims.Email
	result, err := h.payments.Settle(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// History godoc
// @Summary List the caller's payment ledger, newest first
// @Tags Payments
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {array} models.Payment
// @Router /sortedPaidClasses/{email} [get]
func (h *PaymentHandler) History(c *gin.Context) {
	payments, err := h.payments.History(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, payments)
}

// Export godoc
// @Summary Export the caller's payment ledger as CSV or PDF
// @Tags Payments
// @Produce text/csv
// @Produce application/pdf
// @Param email path string true "Student email"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /sortedPaidClasses/{email}/export [get]
func (h *PaymentHandler) Export(c *gin.Context) {
	email := c.Param("email")
	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	data, contentType, err := h.payments.Statement(c.Request.Context(), email, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("payments-%s.%s", email, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
