package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/summer-school-api/internal/models"
)

// Settlement failures callers are expected to branch on.
var (
	ErrSettlementClassNotFound      = errors.New("settlement: class not found")
	ErrSettlementEnrollmentNotFound = errors.New("settlement: enrollment not found")
)

// SettlementParams carries the inputs of the payment settlement sequence.
type SettlementParams struct {
	ClassID         string
	ClassName       string
	InstructorEmail string
	StudentEmail    string
	Amount          float64
	TransactionID   string
	Status          string
	PaidAt          time.Time
}

// SettlementResult reports the outcome of a settlement attempt.
type SettlementResult struct {
	AlreadySettled bool
	AvailableSeats int
	Enrolled       int
}

// PaymentRepository owns the payment ledger and the settlement transaction.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs the repository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Settle runs the settlement sequence as one transaction: lock the class,
// flip the enrollment pending -> paid, persist the new seat and enrolled
// counters on the class and the instructor, and append the ledger entry.
// The enrollment flip doubles as the idempotency guard: a selection that is
// already paid short-circuits with AlreadySettled and no counter changes.
func (r *PaymentRepository) Settle(ctx context.Context, params SettlementParams) (result *SettlementResult, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin settlement transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var class struct {
		AvailableSeats int `db:"available_seats"`
		Enrolled       int `db:"enrolled"`
	}
	const lockQuery = `SELECT available_seats, enrolled FROM classes WHERE id = $1 AND name = $2 FOR UPDATE`
	if err = tx.GetContext(ctx, &class, lockQuery, params.ClassID, params.ClassName); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSettlementClassNotFound
		}
		return nil, fmt.Errorf("lock class: %w", err)
	}

	const flipQuery = `UPDATE enrollments SET payment_status = $4
        WHERE student_email = $1 AND class_id = $2 AND class_name = $3 AND payment_status = $5`
	flipped, err := tx.ExecContext(ctx, flipQuery, params.StudentEmail, params.ClassID, params.ClassName, models.PaymentStatusPaid, models.PaymentStatusPending)
	if err != nil {
		return nil, fmt.Errorf("flip enrollment: %w", err)
	}
	affected, err := flipped.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("flip enrollment: %w", err)
	}
	if affected == 0 {
		var status models.PaymentStatus
		const statusQuery = `SELECT payment_status FROM enrollments WHERE student_email = $1 AND class_id = $2 AND class_name = $3`
		if err = tx.GetContext(ctx, &status, statusQuery, params.StudentEmail, params.ClassID, params.ClassName); err != nil {
			if err == sql.ErrNoRows {
				return nil, ErrSettlementEnrollmentNotFound
			}
			return nil, fmt.Errorf("read enrollment status: %w", err)
		}
		if err = tx.Rollback(); err != nil && err != sql.ErrTxDone {
			return nil, fmt.Errorf("rollback settlement: %w", err)
		}
		err = nil
		return &SettlementResult{AlreadySettled: true, AvailableSeats: class.AvailableSeats, Enrolled: class.Enrolled}, nil
	}

	newSeats := class.AvailableSeats - 1
	if newSeats < 0 {
		newSeats = 0
	}
	newEnrolled := class.Enrolled + 1

	const classQuery = `UPDATE classes SET available_seats = $3, enrolled = $4, updated_at = $5 WHERE id = $1 AND name = $2`
	if _, err = tx.ExecContext(ctx, classQuery, params.ClassID, params.ClassName, newSeats, newEnrolled, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("update class counters: %w", err)
	}

	// The instructor counter is written from the same computed value so the
	// two denormalized counts cannot drift.
	const instructorQuery = `UPDATE users SET number_of_students = $2, updated_at = $3 WHERE email = $1`
	if _, err = tx.ExecContext(ctx, instructorQuery, params.InstructorEmail, newEnrolled, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("update instructor counter: %w", err)
	}

	paidAt := params.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}
	const ledgerQuery = `INSERT INTO payments (id, email, class_name, transaction_id, amount, status, paid_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err = tx.ExecContext(ctx, ledgerQuery, uuid.NewString(), params.StudentEmail, params.ClassName, params.TransactionID, params.Amount, params.Status, paidAt); err != nil {
		return nil, fmt.Errorf("append payment ledger: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit settlement: %w", err)
	}
	return &SettlementResult{AvailableSeats: newSeats, Enrolled: newEnrolled}, nil
}

// ListByEmail returns the ledger entries of one purchaser, newest first.
func (r *PaymentRepository) ListByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	const query = `SELECT id, email, class_name, transaction_id, amount, status, paid_at FROM payments WHERE email = $1 ORDER BY paid_at DESC`
	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query, email); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}
