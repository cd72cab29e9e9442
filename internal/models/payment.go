package models

import "time"

// Payment is an immutable ledger entry appended by the settlement sequence.
// History queries return entries newest first.
type Payment struct {
	ID            string    `db:"id" json:"id"`
	Email         string    `db:"email" json:"email"`
	ClassName     string    `db:"class_name" json:"class_name"`
	TransactionID string    `db:"transaction_id" json:"transaction_id"`
	Amount        float64   `db:"amount" json:"amount"`
	Status        string    `db:"status" json:"status"`
	PaidAt        time.Time `db:"paid_at" json:"paid_at"`
}
