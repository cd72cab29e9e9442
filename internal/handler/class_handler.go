package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/summer-school-api/internal/models"
	"github.com/noah-isme/summer-school-api/internal/service"
	appErrors "github.com/noah-isme/summer-school-api/pkg/errors"
	"github.com/noah-isme/summer-school-api/pkg/response"
)

// ClassHandler exposes the class catalog and admin review endpoints.
type ClassHandler struct {
	classes *service.ClassService
}

// NewClassHandler constructs ClassHandler.
func NewClassHandler(classes *service.ClassService) *ClassHandler {
	return &ClassHandler{classes: classes}
}

// All godoc
// @Summary List approved classes
// @Tags Classes
// @Produce json
// @Success 200 {array} models.Class
// @Router /allClasses [get]
func (h *ClassHandler) All(c *gin.Context) {
	classes, err := h.classes.ListApproved(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, classes)
}

// Popular godoc
// @Summary List classes ranked by enrolled count
// @Tags Classes
// @Produce json
// @Success 200 {array} models.Class
// @Router /popularClasses [get]
func (h *ClassHandler) Popular(c *gin.Context) {
	classes, err := h.classes.ListPopular(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, classes)
}

// ByInstructor godoc
// @Summary List classes taught by the given instructor
// @Tags Classes
// @Produce json
// @Param email path string true "Instructor email"
// @Success 200 {array} models.Class
// @Router /getInstructorClasses/{email} [get]
func (h *ClassHandler) ByInstructor(c *gin.Context) {
	classes, err := h.classes.ListByInstructor(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, classes)
}

// AllForAdmin godoc
// @Summary List every class regardless of status
// @Tags Classes
// @Produce json
// @Param email path string true "Admin email"
// @Success 200 {array} models.Class
// @Router /getAllClassForAdmin/{email} [get]
func (h *ClassHandler) AllForAdmin(c *gin.Context) {
	classes, err := h.classes.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, classes)
}

// Add godoc
// @Summary Submit a class for review
// @Tags Classes
// @Accept json
// @Produce json
// @Param email path string true "Instructor email"
// @Param payload body service.AddClassRequest true "Class payload"
// @Success 201 {object} models.Class
// @Router /addAClass/{email} [post]
func (h *ClassHandler) Add(c *gin.Context) {
	var req service.AddClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	class, err := h.classes.Add(c.Request.Context(), c.Param("email"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// UpdateStatus godoc
// @Summary Approve or deny a submitted class
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Param email path string true "Admin email"
// @Param status path string true "approved or denied"
// @Success 200 {object} response.Message
// @Router /updateStatus/{id}/{email}/{status} [patch]
func (h *ClassHandler) UpdateStatus(c *gin.Context) {
	status := models.ClassStatus(c.Param("status"))
	if err := h.classes.UpdateStatus(c.Request.Context(), c.Param("id"), status); err != nil {
		response.Error(c, err)
		return
	}
	response.Soft(c, "status updated")
}

// HandleFeedback godoc
// @Summary Attach admin feedback to a class
// @Tags Classes
// @Accept json
// @Produce json
// @Param email path string true "Admin email"
// @Param id path string true "Class ID"
// @Param payload body service.FeedbackRequest true "Feedback payload"
// @Success 200 {object} response.Message
// @Router /handleFeedback/{email}/{id} [patch]
func (h *ClassHandler) HandleFeedback(c *gin.Context) {
	var req service.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.classes.UpdateFeedback(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Soft(c, "feedback recorded")
}
