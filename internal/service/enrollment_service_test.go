package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/summer-school-api/internal/models"
	appErrors "github.com/noah-isme/summer-school-api/pkg/errors"
)

type fakeEnrollmentRepo struct {
	exists          bool
	created         []*models.Enrollment
	pending         *models.Enrollment
	listed          []models.Enrollment
	deletedAffected int64
}

func (f *fakeEnrollmentRepo) Exists(context.Context, string, string, string) (bool, error) {
	return f.exists, nil
}

func (f *fakeEnrollmentRepo) Create(_ context.Context, enrollment *models.Enrollment) error {
	f.created = append(f.created, enrollment)
	return nil
}

func (f *fakeEnrollmentRepo) FindPendingByID(context.Context, string) (*models.Enrollment, error) {
	if f.pending == nil {
		return nil, sql.ErrNoRows
	}
	return f.pending, nil
}

func (f *fakeEnrollmentRepo) ListByStudentAndStatus(context.Context, string, models.PaymentStatus) ([]models.Enrollment, error) {
	return f.listed, nil
}

func (f *fakeEnrollmentRepo) DeleteIfPending(context.Context, string, string) (int64, error) {
	return f.deletedAffected, nil
}

type fakeClassReader struct {
	class *models.Class
}

func (f *fakeClassReader) FindByID(context.Context, string) (*models.Class, error) {
	if f.class == nil {
		return nil, sql.ErrNoRows
	}
	return f.class, nil
}

func TestEnrollmentServiceSelect(t *testing.T) {
	repo := &fakeEnrollmentRepo{}
	classes := &fakeClassReader{class: &models.Class{ID: "c1", Name: "Pottery", Price: 42, Image: "pot.png"}}
	svc := NewEnrollmentService(repo, classes, nil, nil)

	enrollment, created, err := svc.Select(context.Background(), "kim@example.com", "c1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.PaymentStatusPending, enrollment.PaymentStatus)
	assert.Equal(t, "Pottery", enrollment.ClassName)
	assert.Equal(t, 42.0, enrollment.Price)
	require.Len(t, repo.created, 1)
}

func TestEnrollmentServiceSelectDuplicateIsSoft(t *testing.T) {
	repo := &fakeEnrollmentRepo{exists: true}
	classes := &fakeClassReader{class: &models.Class{ID: "c1", Name: "Pottery"}}
	svc := NewEnrollmentService(repo, classes, nil, nil)

	enrollment, created, err := svc.Select(context.Background(), "kim@example.com", "c1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Nil(t, enrollment)
	assert.Empty(t, repo.created)
}

func TestEnrollmentServiceSelectUnknownClass(t *testing.T) {
	svc := NewEnrollmentService(&fakeEnrollmentRepo{}, &fakeClassReader{}, nil, nil)

	_, _, err := svc.Select(context.Background(), "kim@example.com", "missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrClassNotFound.Code, appErr.Code)
}

func TestEnrollmentServicePendingByIDMissing(t *testing.T) {
	svc := NewEnrollmentService(&fakeEnrollmentRepo{}, &fakeClassReader{}, nil, nil)

	_, err := svc.PendingByID(context.Background(), "gone")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "selected class not found", appErr.Message)
	assert.Equal(t, 404, appErr.Status)
}

func TestEnrollmentServiceDelete(t *testing.T) {
	svc := NewEnrollmentService(&fakeEnrollmentRepo{deletedAffected: 1}, &fakeClassReader{}, nil, nil)

	deleted, err := svc.Delete(context.Background(), "e1", "kim@example.com")
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestEnrollmentServiceDeletePaidSelectionStays(t *testing.T) {
	svc := NewEnrollmentService(&fakeEnrollmentRepo{deletedAffected: 0}, &fakeClassReader{}, nil, nil)

	deleted, err := svc.Delete(context.Background(), "e2", "kim@example.com")
	require.NoError(t, err)
	assert.False(t, deleted)
}
