package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/summer-school-api/internal/models"
)

// EnrollmentRepository handles persistence of class selections.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

const enrollmentColumns = `id, student_email, class_id, class_name, image, price, payment_status, created_at`

// Exists reports whether the student already selected this class.
func (r *EnrollmentRepository) Exists(ctx context.Context, studentEmail, classID, className string) (bool, error) {
	const query = `SELECT 1 FROM enrollments WHERE student_email = $1 AND class_id = $2 AND class_name = $3 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, studentEmail, classID, className); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return true, nil
}

// Create persists a new pending selection.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	if enrollment.PaymentStatus == "" {
		enrollment.PaymentStatus = models.PaymentStatusPending
	}
	if enrollment.CreatedAt.IsZero() {
		enrollment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO enrollments (id, student_email, class_id, class_name, image, price, payment_status, created_at)
        VALUES (:id, :student_email, :class_id, :class_name, :image, :price, :payment_status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// FindPendingByID returns a selection by id while it still awaits payment.
func (r *EnrollmentRepository) FindPendingByID(ctx context.Context, id string) (*models.Enrollment, error) {
	query := fmt.Sprintf(`SELECT %s FROM enrollments WHERE id = $1 AND payment_status = $2`, enrollmentColumns)
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id, models.PaymentStatusPending); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ListByStudentAndStatus returns the student's selections in one payment state.
func (r *EnrollmentRepository) ListByStudentAndStatus(ctx context.Context, studentEmail string, status models.PaymentStatus) ([]models.Enrollment, error) {
	query := fmt.Sprintf(`SELECT %s FROM enrollments WHERE student_email = $1 AND payment_status = $2 ORDER BY created_at DESC`, enrollmentColumns)
	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, studentEmail, status); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// DeleteIfPending removes a selection only while it still awaits payment.
// Paid selections are never deleted; the zero row count tells the caller.
func (r *EnrollmentRepository) DeleteIfPending(ctx context.Context, id, studentEmail string) (int64, error) {
	const query = `DELETE FROM enrollments WHERE id = $1 AND student_email = $2 AND payment_status = $3`
	result, err := r.db.ExecContext(ctx, query, id, studentEmail, models.PaymentStatusPending)
	if err != nil {
		return 0, fmt.Errorf("delete enrollment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete enrollment: %w", err)
	}
	return affected, nil
}
