package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/summer-school-api/internal/models"
)

func newEnrollmentMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func enrollmentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "student_email", "class_id", "class_name", "image", "price", "payment_status", "created_at"})
}

func TestEnrollmentRepositoryExists(t *testing.T) {
	db, mock, cleanup := newEnrollmentMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery("SELECT 1 FROM enrollments").
		WithArgs("kim@example.com", "c1", "Pottery").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), "kim@example.com", "c1", "Pottery")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryExistsNot(t *testing.T) {
	db, mock, cleanup := newEnrollmentMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery("SELECT 1 FROM enrollments").
		WithArgs("kim@example.com", "c2", "Chess").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.Exists(context.Background(), "kim@example.com", "c2", "Chess")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryCreateDefaultsPending(t *testing.T) {
	db, mock, cleanup := newEnrollmentMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec("INSERT INTO enrollments").
		WillReturnResult(sqlmock.NewResult(1, 1))

	enrollment := &models.Enrollment{StudentEmail: "kim@example.com", ClassID: "c1", ClassName: "Pottery", Price: 42}
	err := repo.Create(context.Background(), enrollment)
	require.NoError(t, err)
	assert.NotEmpty(t, enrollment.ID)
	assert.Equal(t, models.PaymentStatusPending, enrollment.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryFindPendingByID(t *testing.T) {
	db, mock, cleanup := newEnrollmentMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	rows := enrollmentRows().
		AddRow("e1", "kim@example.com", "c1", "Pottery", "", 42.0, "pending", time.Now())
	mock.ExpectQuery("SELECT .+ FROM enrollments WHERE id = \\$1 AND payment_status = \\$2").
		WithArgs("e1", models.PaymentStatusPending).
		WillReturnRows(rows)

	enrollment, err := repo.FindPendingByID(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, "Pottery", enrollment.ClassName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryFindPendingByIDMissing(t *testing.T) {
	db, mock, cleanup := newEnrollmentMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery("SELECT .+ FROM enrollments WHERE id = \\$1 AND payment_status = \\$2").
		WithArgs("gone", models.PaymentStatusPending).
		WillReturnRows(enrollmentRows())

	_, err := repo.FindPendingByID(context.Background(), "gone")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListByStudentAndStatus(t *testing.T) {
	db, mock, cleanup := newEnrollmentMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	rows := enrollmentRows().
		AddRow("e2", "kim@example.com", "c2", "Chess", "", 30.0, "paid", time.Now()).
		AddRow("e1", "kim@example.com", "c1", "Pottery", "", 42.0, "paid", time.Now().Add(-time.Hour))
	mock.ExpectQuery("SELECT .+ FROM enrollments WHERE student_email = \\$1 AND payment_status = \\$2 ORDER BY created_at DESC").
		WithArgs("kim@example.com", models.PaymentStatusPaid).
		WillReturnRows(rows)

	enrollments, err := repo.ListByStudentAndStatus(context.Background(), "kim@example.com", models.PaymentStatusPaid)
	require.NoError(t, err)
	require.Len(t, enrollments, 2)
	assert.Equal(t, "e2", enrollments[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryDeleteIfPending(t *testing.T) {
	db, mock, cleanup := newEnrollmentMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec("DELETE FROM enrollments").
		WithArgs("e1", "kim@example.com", models.PaymentStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.DeleteIfPending(context.Background(), "e1", "kim@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryDeleteIfPendingAlreadyPaid(t *testing.T) {
	db, mock, cleanup := newEnrollmentMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec("DELETE FROM enrollments").
		WithArgs("e2", "kim@example.com", models.PaymentStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.DeleteIfPending(context.Background(), "e2", "kim@example.com")
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
