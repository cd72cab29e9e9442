package models

import "time"

// Audit actions recorded for privileged writes.
const (
	AuditActionStatusChange = "class_status_change"
	AuditActionFeedback     = "class_feedback"
)

// AuditLog records an admin decision on a class.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	UserEmail  *string   `db:"user_email" json:"user_email,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	NewValues  []byte    `db:"new_values" json:"new_values,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
