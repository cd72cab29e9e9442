package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/summer-school-api/internal/models"
	appErrors "github.com/noah-isme/summer-school-api/pkg/errors"
)

// PopularInstructorThreshold is the enrolled-student count from which an
// instructor is listed as popular.
const PopularInstructorThreshold = 10

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
	ListPopularInstructors(ctx context.Context, minStudents int) ([]models.User, error)
}

// RegisterRequest describes the first-registration payload.
type RegisterRequest struct {
	Email string          `json:"email" validate:"required,email"`
	Name  string          `json:"name" validate:"required"`
	Photo string          `json:"photo"`
	Role  models.UserRole `json:"role" validate:"omitempty,oneof=student instructor admin"`
}

// UserService provides user record use cases.
type UserService struct {
	repo      userRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs UserService.
func NewUserService(repo userRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Register inserts a user record on first registration. A repeated
// registration with the same email is a no-op returning the stored record.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*models.User, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}
	user := &models.User{Email: req.Email, Name: req.Name, Photo: req.Photo, Role: role, ClassNames: pq.StringArray{}}
	if err := s.repo.Insert(ctx, user); err != nil {
		// A concurrent first registration may win the unique email race;
		// the stored record is the answer either way.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			stored, readErr := s.repo.FindByEmail(ctx, req.Email)
			if readErr == nil {
				return stored, false, nil
			}
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.cache.InvalidateInstructors(ctx)
	return user, true, nil
}

// HasRole reports whether the stored record for email holds the given role.
// Absent users simply do not hold the role.
func (s *UserService) HasRole(ctx context.Context, email string, role models.UserRole) (bool, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user.Role == role, nil
}

// ListInstructors returns every instructor, cached.
func (s *UserService) ListInstructors(ctx context.Context) ([]models.User, error) {
	var cached []models.User
	if s.cache.Get(ctx, CacheKeyInstructors, &cached) {
		return cached, nil
	}
	instructors, err := s.repo.ListByRole(ctx, models.RoleInstructor)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructors")
	}
	s.cache.Set(ctx, CacheKeyInstructors, instructors)
	return instructors, nil
}

// ListPopularInstructors returns instructors at the popularity threshold, cached.
func (s *UserService) ListPopularInstructors(ctx context.Context) ([]models.User, error) {
	var cached []models.User
	if s.cache.Get(ctx, CacheKeyPopularInstructors, &cached) {
		return cached, nil
	}
	instructors, err := s.repo.ListPopularInstructors(ctx, PopularInstructorThreshold)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list popular instructors")
	}
	s.cache.Set(ctx, CacheKeyPopularInstructors, instructors)
	return instructors, nil
}
