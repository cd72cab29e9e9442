package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/summer-school-api/internal/models"
	"github.com/noah-isme/summer-school-api/internal/service"
	appErrors "github.com/noah-isme/summer-school-api/pkg/errors"
	"github.com/noah-isme/summer-school-api/pkg/response"
)

// EnrollmentHandler exposes the student class-selection endpoints.
type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// Select godoc
// @Summary Add a class to the caller's pending selections
// @Tags Enrollments
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Message
// @Success 201 {object} models.Enrollment
// @Router /studentsClass/{id} [post]
func (h *EnrollmentHandler) Select(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrMissingCredential)
		return
	}
	enrollment, created, err := h.enrollments.Select(c.Request.Context(), claims.Email, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !created {
		response.Soft(c, "already added")
		return
	}
	response.Created(c, enrollment)
}

// Pending godoc
// @Summary List the student's pending selections
// @Tags Enrollments
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {array} models.Enrollment
// @Router /pendingClasses/{email} [get]
func (h *EnrollmentHandler) Pending(c *gin.Context) {
	enrollments, err := h.enrollments.ListByStatus(c.Request.Context(), c.Param("email"), models.PaymentStatusPending)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, enrollments)
}

// SelectedByID godoc
// @Summary Fetch one pending selection, typically to start a payment
// @Tags Enrollments
// @Produce json
// @Param id path string true "Enrollment ID"
// @Success 200 {object} models.Enrollment
// @Router /selectedClass/{id} [get]
func (h *EnrollmentHandler) SelectedByID(c *gin.Context) {
	enrollment, err := h.enrollments.PendingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, enrollment)
}

// Paid godoc
// @Summary List the student's paid enrollments
// @Tags Enrollments
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {array} models.Enrollment
// @Router /getPaidClasses/{email} [get]
func (h *EnrollmentHandler) Paid(c *gin.Context) {
	enrollments, err := h.enrollments.ListByStatus(c.Request.Context(), c.Param("email"), models.PaymentStatusPaid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, enrollments)
}

// Delete godoc
// @Summary Remove a pending selection
// @Tags Enrollments
// @Produce json
// @Param id path string true "Enrollment ID"
// @Param email path string true "Student email"
// @Success 200 {object} response.Message
// @Router /studentsClass/{id}/{email} [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	deleted, err := h.enrollments.Delete(c.Request.Context(), c.Param("id"), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "selected class not found"))
		return
	}
	response.Soft(c, "selected class removed")
}
