package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/summer-school-api/internal/models"
	appErrors "github.com/noah-isme/summer-school-api/pkg/errors"
)

// PopularClassThreshold is the enrolled count from which a class is popular.
const PopularClassThreshold = 10

type classRepository interface {
	Create(ctx context.Context, class *models.Class) error
	FindByID(ctx context.Context, id string) (*models.Class, error)
	ListApproved(ctx context.Context) ([]models.Class, error)
	ListPopular(ctx context.Context, minEnrolled int) ([]models.Class, error)
	ListByInstructor(ctx context.Context, email string) ([]models.Class, error)
	ListAll(ctx context.Context) ([]models.Class, error)
	UpdateStatus(ctx context.Context, id string, status models.ClassStatus) (int64, error)
	UpdateFeedback(ctx context.Context, id, feedback string) (int64, error)
}

type instructorRoster interface {
	AppendClassName(ctx context.Context, email, className string) error
}

// AddClassRequest describes an instructor's new class submission.
type AddClassRequest struct {
	Name           string  `json:"name" validate:"required"`
	Image          string  `json:"image"`
	InstructorName string  `json:"instructor_name" validate:"required"`
	AvailableSeats int     `json:"available_seats" validate:"gte=0"`
	Price          float64 `json:"price" validate:"gte=0"`
}

// FeedbackRequest carries the admin feedback text.
type FeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}

// ClassService orchestrates catalog workflows.
type ClassService struct {
	repo      classRepository
	roster    instructorRoster
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs ClassService.
func NewClassService(repo classRepository, roster instructorRoster, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, roster: roster, cache: cache, validator: validate, logger: logger}
}

// ListApproved returns admin-approved classes, cached.
func (s *ClassService) ListApproved(ctx context.Context) ([]models.Class, error) {
	var cached []models.Class
	if s.cache.Get(ctx, CacheKeyApprovedClasses, &cached) {
		return cached, nil
	}
	classes, err := s.repo.ListApproved(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	s.cache.Set(ctx, CacheKeyApprovedClasses, classes)
	return classes, nil
}

// ListPopular returns classes at the popularity threshold, cached.
func (s *ClassService) ListPopular(ctx context.Context) ([]models.Class, error) {
	var cached []models.Class
	if s.cache.Get(ctx, CacheKeyPopularClasses, &cached) {
		return cached, nil
	}
	classes, err := s.repo.ListPopular(ctx, PopularClassThreshold)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list popular classes")
	}
	s.cache.Set(ctx, CacheKeyPopularClasses, classes)
	return classes, nil
}

// ListByInstructor returns the instructor's own classes, any status.
func (s *ClassService) ListByInstructor(ctx context.Context, email string) ([]models.Class, error) {
	classes, err := s.repo.ListByInstructor(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructor classes")
	}
	return classes, nil
}

// ListAll returns every class for the admin review board.
func (s *ClassService) ListAll(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// Add creates a pending class and pushes its name onto the instructor's
// roster, recomputing the instructor's class count.
func (s *ClassService) Add(ctx context.Context, instructorEmail string, req AddClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}

	class := &models.Class{
		Name:            req.Name,
		Image:           req.Image,
		InstructorName:  req.InstructorName,
		InstructorEmail: instructorEmail,
		AvailableSeats:  req.AvailableSeats,
		TotalSeats:      req.AvailableSeats,
		Price:           req.Price,
		Status:          models.ClassStatusPending,
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}

	if err := s.roster.AppendClassName(ctx, instructorEmail, req.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update instructor roster")
	}

	s.cache.InvalidateClasses(ctx)
	s.cache.InvalidateInstructors(ctx)
	return class, nil
}

// UpdateStatus records the admin approval decision.
func (s *ClassService) UpdateStatus(ctx context.Context, id string, status models.ClassStatus) error {
	switch status {
	case models.ClassStatusPending, models.ClassStatusApproved, models.ClassStatusDenied:
	default:
		return appErrors.Clone(appErrors.ErrValidation, "unknown class status")
	}

	affected, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update class status")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrClassNotFound, "")
	}

	s.cache.InvalidateClasses(ctx)
	return nil
}

// UpdateFeedback records admin feedback on a class.
func (s *ClassService) UpdateFeedback(ctx context.Context, id string, req FeedbackRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid feedback payload")
	}

	affected, err := s.repo.UpdateFeedback(ctx, id, req.Feedback)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update class feedback")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrClassNotFound, "")
	}
	return nil
}
