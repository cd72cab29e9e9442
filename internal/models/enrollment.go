package models

import "time"

// PaymentStatus is the settlement state of a class selection.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Enrollment is a student's class selection. A selection is unique per
// (student_email, class_id, class_name), transitions pending -> paid exactly
// once through the settlement sequence, and is deletable only while pending.
type Enrollment struct {
	ID            string        `db:"id" json:"id"`
	StudentEmail  string        `db:"student_email" json:"student_email"`
	ClassID       string        `db:"class_id" json:"class_id"`
	ClassName     string        `db:"class_name" json:"class_name"`
	Image         string        `db:"image" json:"image,omitempty"`
	Price         float64       `db:"price" json:"price"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}
