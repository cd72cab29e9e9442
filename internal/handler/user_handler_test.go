package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/summer-school-api/internal/models"
	"github.com/noah-isme/summer-school-api/internal/service"
)

type userRepoMock struct {
	users    map[string]*models.User
	inserted []*models.User
	byRole   []models.User
}

func (m *userRepoMock) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := m.users[email]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (m *userRepoMock) Insert(_ context.Context, user *models.User) error {
	m.inserted = append(m.inserted, user)
	return nil
}

func (m *userRepoMock) ListByRole(context.Context, models.UserRole) ([]models.User, error) {
	return m.byRole, nil
}

func (m *userRepoMock) ListPopularInstructors(context.Context, int) ([]models.User, error) {
	return nil, nil
}

func newUserTestContext(t *testing.T, repo *userRepoMock) (*UserHandler, *httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler := NewUserHandler(service.NewUserService(repo, nil, nil, nil))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return handler, w, c
}

func TestUserHandlerRegisterNew(t *testing.T) {
	repo := &userRepoMock{}
	handler, w, c := newUserTestContext(t, repo)

	body, _ := json.Marshal(service.RegisterRequest{Email: "kim@example.com", Name: "Kim"})
	req, _ := http.NewRequest(http.MethodPost, "/newUser", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Register(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, models.RoleStudent, repo.inserted[0].Role)
}

func TestUserHandlerRegisterRepeat(t *testing.T) {
	repo := &userRepoMock{users: map[string]*models.User{
		"kim@example.com": {ID: "u1", Email: "kim@example.com", Name: "Kim"},
	}}
	handler, w, c := newUserTestContext(t, repo)

	body, _ := json.Marshal(service.RegisterRequest{Email: "kim@example.com", Name: "Kim"})
	req, _ := http.NewRequest(http.MethodPost, "/newUser", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Register(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.inserted)
}

func TestUserHandlerIsAdminFlag(t *testing.T) {
	repo := &userRepoMock{users: map[string]*models.User{
		"root@example.com": {Email: "root@example.com", Role: models.RoleAdmin},
	}}
	handler, w, c := newUserTestContext(t, repo)

	req, _ := http.NewRequest(http.MethodGet, "/allUsers/admin/root@example.com", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "email", Value: "root@example.com"}}

	handler.IsAdmin(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"admin":true}`, w.Body.String())
}

func TestUserHandlerIsInstructorFlagAbsentUser(t *testing.T) {
	handler, w, c := newUserTestContext(t, &userRepoMock{})

	req, _ := http.NewRequest(http.MethodGet, "/allUsers/instructor/ghost@example.com", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "email", Value: "ghost@example.com"}}

	handler.IsInstructor(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"instructor":false}`, w.Body.String())
}

func TestUserHandlerInstructors(t *testing.T) {
	repo := &userRepoMock{byRole: []models.User{{Email: "ada@example.com", Role: models.RoleInstructor}}}
	handler, w, c := newUserTestContext(t, repo)

	req, _ := http.NewRequest(http.MethodGet, "/instructors", nil)
	c.Request = req

	handler.Instructors(c)
	require.Equal(t, http.StatusOK, w.Code)

	var instructors []models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &instructors))
	assert.Len(t, instructors, 1)
}
