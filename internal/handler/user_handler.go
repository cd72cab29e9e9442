package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/summer-school-api/internal/models"
	"github.com/noah-isme/summer-school-api/internal/service"
	appErrors "github.com/noah-isme/summer-school-api/pkg/errors"
	"github.com/noah-isme/summer-school-api/pkg/response"
)

// UserHandler exposes user and role-check endpoints.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register godoc
// @Summary Insert a user document, ignoring repeats of the same email
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body service.RegisterRequest true "User payload"
// @Success 200 {object} models.User
// @Success 201 {object} models.User
// @Router /newUser [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	user, created, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if created {
		response.Created(c, user)
		return
	}
	response.OK(c, user)
}

// IsAdmin godoc
// @Summary Report whether the given email belongs to an admin
// @Tags Users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} map[string]bool
// @Router /allUsers/admin/{email} [get]
func (h *UserHandler) IsAdmin(c *gin.Context) {
	h.roleCheck(c, models.RoleAdmin, "admin")
}

// IsInstructor godoc
// @Summary Report whether the given email belongs to an instructor
// @Tags Users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} map[string]bool
// @Router /allUsers/instructor/{email} [get]
func (h *UserHandler) IsInstructor(c *gin.Context) {
	h.roleCheck(c, models.RoleInstructor, "instructor")
}

// IsStudent godoc
// @Summary Report whether the given email belongs to a student
// @Tags Users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} map[string]bool
// @Router /allUsers/student/{email} [get]
func (h *UserHandler) IsStudent(c *gin.Context) {
	h.roleCheck(c, models.RoleStudent, "student")
}

func (h *UserHandler) roleCheck(c *gin.Context, role models.UserRole, key string) {
	ok, err := h.users.HasRole(c.Request.Context(), c.Param("email"), role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{key: ok})
}

// Instructors godoc
// @Summary List all instructors
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Router /instructors [get]
func (h *UserHandler) Instructors(c *gin.Context) {
	instructors, err := h.users.ListInstructors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, instructors)
}

// PopularInstructors godoc
// @Summary List instructors ranked by enrolled student count
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Router /popularInstructors [get]
func (h *UserHandler) PopularInstructors(c *gin.Context) {
	instructors, err := h.users.ListPopularInstructors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, instructors)
}
