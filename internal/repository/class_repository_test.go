package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/summer-school-api/internal/models"
)

func newClassMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func classRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "image", "instructor_name", "instructor_email", "available_seats", "total_seats", "price", "enrolled", "status", "feedback", "created_at", "updated_at"})
}

func TestClassRepositoryCreateDefaultsPending(t *testing.T) {
	db, mock, cleanup := newClassMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectExec("INSERT INTO classes").
		WillReturnResult(sqlmock.NewResult(1, 1))

	class := &models.Class{Name: "Pottery", InstructorName: "Ada", InstructorEmail: "ada@example.com", AvailableSeats: 20, TotalSeats: 20, Price: 42}
	err := repo.Create(context.Background(), class)
	require.NoError(t, err)
	assert.NotEmpty(t, class.ID)
	assert.Equal(t, models.ClassStatusPending, class.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newClassMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	rows := classRows().
		AddRow("c1", "Pottery", "", "Ada", "ada@example.com", 20, 20, 42.0, 0, "approved", nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, image, instructor_name, instructor_email, available_seats, total_seats, price, enrolled, status, feedback, created_at, updated_at FROM classes WHERE id = $1")).
		WithArgs("c1").
		WillReturnRows(rows)

	class, err := repo.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Pottery", class.Name)
	assert.Nil(t, class.Feedback)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryListApproved(t *testing.T) {
	db, mock, cleanup := newClassMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	rows := classRows().
		AddRow("c1", "Pottery", "", "Ada", "ada@example.com", 18, 20, 42.0, 2, "approved", nil, time.Now(), time.Now())
	mock.ExpectQuery("SELECT .+ FROM classes WHERE status = \\$1 ORDER BY name").
		WithArgs(models.ClassStatusApproved).
		WillReturnRows(rows)

	classes, err := repo.ListApproved(context.Background())
	require.NoError(t, err)
	assert.Len(t, classes, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryListPopular(t *testing.T) {
	db, mock, cleanup := newClassMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	rows := classRows().
		AddRow("c2", "Chess", "", "Bea", "bea@example.com", 0, 15, 30.0, 15, "approved", nil, time.Now(), time.Now())
	mock.ExpectQuery("SELECT .+ FROM classes WHERE status = \\$1 AND enrolled >= \\$2 ORDER BY enrolled DESC").
		WithArgs(models.ClassStatusApproved, 10).
		WillReturnRows(rows)

	classes, err := repo.ListPopular(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, 15, classes[0].Enrolled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newClassMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectExec("UPDATE classes SET status").
		WithArgs("c1", models.ClassStatusApproved, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.UpdateStatus(context.Background(), "c1", models.ClassStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryUpdateStatusMissingClass(t *testing.T) {
	db, mock, cleanup := newClassMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectExec("UPDATE classes SET status").
		WithArgs("missing", models.ClassStatusDenied, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.UpdateStatus(context.Background(), "missing", models.ClassStatusDenied)
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryUpdateFeedback(t *testing.T) {
	db, mock, cleanup := newClassMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectExec("UPDATE classes SET feedback").
		WithArgs("c1", "needs a syllabus", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.UpdateFeedback(context.Background(), "c1", "needs a syllabus")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
