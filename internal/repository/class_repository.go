package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/summer-school-api/internal/models"
)

// ClassRepository handles persistence of classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs the repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

const classColumns = `id, name, image, instructor_name, instructor_email, available_seats, total_seats, price, enrolled, status, feedback, created_at, updated_at`

// Create persists a new class. New classes await admin approval.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	if class.Status == "" {
		class.Status = models.ClassStatusPending
	}
	now := time.Now().UTC()
	class.CreatedAt = now
	class.UpdatedAt = now
	const query = `INSERT INTO classes (id, name, image, instructor_name, instructor_email, available_seats, total_seats, price, enrolled, status, feedback, created_at, updated_at)
        VALUES (:id, :name, :image, :instructor_name, :instructor_email, :available_seats, :total_seats, :price, :enrolled, :status, :feedback, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// FindByID returns a class by its ID.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE id = $1`, classColumns)
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// ListApproved returns classes cleared by an admin.
func (r *ClassRepository) ListApproved(ctx context.Context) ([]models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE status = $1 ORDER BY name`, classColumns)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, models.ClassStatusApproved); err != nil {
		return nil, fmt.Errorf("list approved classes: %w", err)
	}
	return classes, nil
}

// ListPopular returns approved classes whose enrolled count has reached the
// threshold, fullest first.
func (r *ClassRepository) ListPopular(ctx context.Context, minEnrolled int) ([]models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE status = $1 AND enrolled >= $2 ORDER BY enrolled DESC`, classColumns)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, models.ClassStatusApproved, minEnrolled); err != nil {
		return nil, fmt.Errorf("list popular classes: %w", err)
	}
	return classes, nil
}

// ListByInstructor returns every class owned by the instructor email.
func (r *ClassRepository) ListByInstructor(ctx context.Context, email string) ([]models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE instructor_email = $1 ORDER BY created_at DESC`, classColumns)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, email); err != nil {
		return nil, fmt.Errorf("list instructor classes: %w", err)
	}
	return classes, nil
}

// ListAll returns every class regardless of status.
func (r *ClassRepository) ListAll(ctx context.Context) ([]models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes ORDER BY created_at DESC`, classColumns)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list all classes: %w", err)
	}
	return classes, nil
}

// UpdateStatus sets the approval status of a class. It reports how many rows
// matched so callers can distinguish a missing class.
func (r *ClassRepository) UpdateStatus(ctx context.Context, id string, status models.ClassStatus) (int64, error) {
	const query = `UPDATE classes SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("update class status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update class status: %w", err)
	}
	return affected, nil
}

// UpdateFeedback sets the admin feedback text on a class.
func (r *ClassRepository) UpdateFeedback(ctx context.Context, id, feedback string) (int64, error) {
	const query = `UPDATE classes SET feedback = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, feedback, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("update class feedback: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update class feedback: %w", err)
	}
	return affected, nil
}
