package models

import "time"

// ClassStatus is the admin approval state of a class.
type ClassStatus string

const (
	ClassStatusPending  ClassStatus = "pending"
	ClassStatusApproved ClassStatus = "approved"
	ClassStatusDenied   ClassStatus = "denied"
)

// Class represents an offered class. available_seats never goes below zero
// and enrolled only increases through a successful payment settlement.
type Class struct {
	ID              string      `db:"id" json:"id"`
	Name            string      `db:"name" json:"name"`
	Image           string      `db:"image" json:"image,omitempty"`
	InstructorName  string      `db:"instructor_name" json:"instructor_name"`
	InstructorEmail string      `db:"instructor_email" json:"instructor_email"`
	AvailableSeats  int         `db:"available_seats" json:"available_seats"`
	TotalSeats      int         `db:"total_seats" json:"total_seats"`
	Price           float64     `db:"price" json:"price"`
	Enrolled        int         `db:"enrolled" json:"enrolled"`
	Status          ClassStatus `db:"status" json:"status"`
	Feedback        *string     `db:"feedback" json:"feedback,omitempty"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}
