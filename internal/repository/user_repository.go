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

// UserRepository handles persistence of user records.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs the repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, name, photo, role, class_names, number_of_classes, number_of_students, created_at, updated_at`

// FindByEmail returns the user for the given email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// Insert persists a new user record. Registration is idempotent at the
// service layer; the unique email constraint backs that up.
func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = models.RoleStudent
	}
	const query = `INSERT INTO users (id, email, name, photo, role, class_names, number_of_classes, number_of_students, created_at, updated_at)
        VALUES (:id, :email, :name, :photo, :role, :class_names, :number_of_classes, :number_of_students, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// ListByRole returns users holding the given role.
func (r *UserRepository) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE role = $1 ORDER BY name`, userColumns)
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, role); err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return users, nil
}

// ListPopularInstructors returns instructors whose enrolled student count has
// reached the threshold, busiest first.
func (r *UserRepository) ListPopularInstructors(ctx context.Context, minStudents int) ([]models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE role = $1 AND number_of_students >= $2 ORDER BY number_of_students DESC`, userColumns)
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, models.RoleInstructor, minStudents); err != nil {
		return nil, fmt.Errorf("list popular instructors: %w", err)
	}
	return users, nil
}

// AppendClassName pushes a new class name onto the instructor's roster and
// recomputes the class count in the same statement.
func (r *UserRepository) AppendClassName(ctx context.Context, email, className string) error {
	const query = `UPDATE users
        SET class_names = array_append(class_names, $2),
            number_of_classes = COALESCE(array_length(array_append(class_names, $2), 1), 0),
            updated_at = $3
        WHERE email = $1`
	result, err := r.db.ExecContext(ctx, query, email, className, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("append class name: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CreateAuditLog appends an audit trail entry.
func (r *UserRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_logs (id, user_email, action, resource, resource_id, new_values, ip_address, user_agent, created_at)
        VALUES (:id, :user_email, :action, :resource, :resource_id, :new_values, :ip_address, :user_agent, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}
