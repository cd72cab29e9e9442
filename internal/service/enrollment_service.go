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

type enrollmentRepository interface {
	Exists(ctx context.Context, studentEmail, classID, className string) (bool, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	FindPendingByID(ctx context.Context, id string) (*models.Enrollment, error)
	ListByStudentAndStatus(ctx context.Context, studentEmail string, status models.PaymentStatus) ([]models.Enrollment, error)
	DeleteIfPending(ctx context.Context, id, studentEmail string) (int64, error)
}

type classReader interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
}

// EnrollmentService orchestrates class selection workflows. The student
// identity always comes from the verified session claims, never the body.
type EnrollmentService struct {
	repo      enrollmentRepository
	classes   classReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, classes classReader, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, classes: classes, validator: validate, logger: logger}
}

// Select adds a pending selection of the class for the student. Selecting the
// same class twice is answered softly: the stored selection is returned with
// created=false and no second record is written.
func (s *EnrollmentService) Select(ctx context.Context, studentEmail, classID string) (*models.Enrollment, bool, error) {
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, appErrors.Clone(appErrors.ErrClassNotFound, "")
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	exists, err := s.repo.Exists(ctx, studentEmail, class.ID, class.Name)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check selection")
	}
	if exists {
		return nil, false, nil
	}

	enrollment := &models.Enrollment{
		StudentEmail:  studentEmail,
		ClassID:       class.ID,
		ClassName:     class.Name,
		Image:         class.Image,
		Price:         class.Price,
		PaymentStatus: models.PaymentStatusPending,
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create selection")
	}
	return enrollment, true, nil
}

// PendingByID returns one selection by id while it still awaits payment.
func (s *EnrollmentService) PendingByID(ctx context.Context, id string) (*models.Enrollment, error) {
	enrollment, err := s.repo.FindPendingByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "selected class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load selection")
	}
	return enrollment, nil
}

// ListByStatus returns the student's selections in the given payment state.
func (s *EnrollmentService) ListByStatus(ctx context.Context, studentEmail string, status models.PaymentStatus) ([]models.Enrollment, error) {
	enrollments, err := s.repo.ListByStudentAndStatus(ctx, studentEmail, status)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list selections")
	}
	return enrollments, nil
}

// Delete removes a selection while it is still pending. A paid selection is
// untouched and reported as not deleted.
func (s *EnrollmentService) Delete(ctx context.Context, id, studentEmail string) (bool, error) {
	affected, err := s.repo.DeleteIfPending(ctx, id, studentEmail)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete selection")
	}
	return affected > 0, nil
}
