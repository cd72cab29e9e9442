package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/summer-school-api/internal/models"
	appErrors "github.com/noah-isme/summer-school-api/pkg/errors"
)

type fakeClassRepo struct {
	created         []*models.Class
	approved        []models.Class
	popular         []models.Class
	statusAffected  int64
	statusCalls     []models.ClassStatus
	feedbackCalls   []string
	feedbackMatched int64
}

func (f *fakeClassRepo) Create(_ context.Context, class *models.Class) error {
	f.created = append(f.created, class)
	return nil
}

func (f *fakeClassRepo) FindByID(context.Context, string) (*models.Class, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeClassRepo) ListApproved(context.Context) ([]models.Class, error) {
	return f.approved, nil
}

func (f *fakeClassRepo) ListPopular(context.Context, int) ([]models.Class, error) {
	return f.popular, nil
}

func (f *fakeClassRepo) ListByInstructor(context.Context, string) ([]models.Class, error) {
	return nil, nil
}

func (f *fakeClassRepo) ListAll(context.Context) ([]models.Class, error) {
	return nil, nil
}

func (f *fakeClassRepo) UpdateStatus(_ context.Context, _ string, status models.ClassStatus) (int64, error) {
	f.statusCalls = append(f.statusCalls, status)
	return f.statusAffected, nil
}

func (f *fakeClassRepo) UpdateFeedback(_ context.Context, _ string, feedback string) (int64, error) {
	f.feedbackCalls = append(f.feedbackCalls, feedback)
	return f.feedbackMatched, nil
}

type fakeRoster struct {
	err      error
	appended []string
}

func (f *fakeRoster) AppendClassName(_ context.Context, _, className string) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, className)
	return nil
}

func TestClassServiceAddCreatesPendingAndUpdatesRoster(t *testing.T) {
	repo := &fakeClassRepo{}
	roster := &fakeRoster{}
	svc := NewClassService(repo, roster, nil, nil, nil)

	class, err := svc.Add(context.Background(), "ada@example.com", AddClassRequest{
		Name:           "Pottery",
		InstructorName: "Ada",
		AvailableSeats: 20,
		Price:          42,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ClassStatusPending, class.Status)
	assert.Equal(t, "ada@example.com", class.InstructorEmail)
	assert.Equal(t, 20, class.TotalSeats)
	assert.Equal(t, []string{"Pottery"}, roster.appended)
}

func TestClassServiceAddUnknownInstructor(t *testing.T) {
	repo := &fakeClassRepo{}
	roster := &fakeRoster{err: sql.ErrNoRows}
	svc := NewClassService(repo, roster, nil, nil, nil)

	_, err := svc.Add(context.Background(), "ghost@example.com", AddClassRequest{
		Name:           "Pottery",
		InstructorName: "Ghost",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "instructor not found", appErr.Message)
	assert.Equal(t, 404, appErr.Status)
}

func TestClassServiceAddRejectsNegativeSeats(t *testing.T) {
	svc := NewClassService(&fakeClassRepo{}, &fakeRoster{}, nil, nil, nil)

	_, err := svc.Add(context.Background(), "ada@example.com", AddClassRequest{
		Name:           "Pottery",
		InstructorName: "Ada",
		AvailableSeats: -1,
	})
	assert.Error(t, err)
}

func TestClassServiceUpdateStatus(t *testing.T) {
	repo := &fakeClassRepo{statusAffected: 1}
	svc := NewClassService(repo, &fakeRoster{}, nil, nil, nil)

	err := svc.UpdateStatus(context.Background(), "c1", models.ClassStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, []models.ClassStatus{models.ClassStatusApproved}, repo.statusCalls)
}

func TestClassServiceUpdateStatusUnknownValue(t *testing.T) {
	repo := &fakeClassRepo{}
	svc := NewClassService(repo, &fakeRoster{}, nil, nil, nil)

	err := svc.UpdateStatus(context.Background(), "c1", "archived")
	require.Error(t, err)
	assert.Empty(t, repo.statusCalls)
}

func TestClassServiceUpdateStatusMissingClass(t *testing.T) {
	repo := &fakeClassRepo{statusAffected: 0}
	svc := NewClassService(repo, &fakeRoster{}, nil, nil, nil)

	err := svc.UpdateStatus(context.Background(), "missing", models.ClassStatusDenied)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrClassNotFound.Code, appErr.Code)
}

func TestClassServiceUpdateFeedback(t *testing.T) {
	repo := &fakeClassRepo{feedbackMatched: 1}
	svc := NewClassService(repo, &fakeRoster{}, nil, nil, nil)

	err := svc.UpdateFeedback(context.Background(), "c1", FeedbackRequest{Feedback: "add a syllabus"})
	require.NoError(t, err)
	assert.Equal(t, []string{"add a syllabus"}, repo.feedbackCalls)
}

func TestClassServiceUpdateFeedbackRequiresText(t *testing.T) {
	svc := NewClassService(&fakeClassRepo{}, &fakeRoster{}, nil, nil, nil)

	err := svc.UpdateFeedback(context.Background(), "c1", FeedbackRequest{})
	assert.Error(t, err)
}
