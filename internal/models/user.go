package models

import (
	"time"

	"github.com/lib/pq"
)

// UserRole represents the per-role access level of a user record.
type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleInstructor UserRole = "instructor"
	RoleAdmin      UserRole = "admin"
)

// User represents an application user stored in the users table. The
// class_names list and the two counters are denormalized instructor fields:
// class_names is appended on class creation, number_of_students is rewritten
// by the payment settlement so it never drifts from the class counter.
type User struct {
	ID               string         `db:"id" json:"id"`
	Email            string         `db:"email" json:"email"`
	Name             string         `db:"name" json:"name"`
	Photo            string         `db:"photo" json:"photo,omitempty"`
	Role             UserRole       `db:"role" json:"role"`
	ClassNames       pq.StringArray `db:"class_names" json:"class_names,omitempty"`
	NumberOfClasses  int            `db:"number_of_classes" json:"number_of_classes"`
	NumberOfStudents int            `db:"number_of_students" json:"number_of_students"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}
