package model

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Appointment is a booking record, independent from the slot grid. The
// date and time fields are wall-clock strings (YYYY-MM-DD / HH:MM) so
// range queries reduce to lexical comparison.
type Appointment struct {
	ID          string
	ServiceID   string
	ServiceName string
	CompanyID   string
	CompanyName string
	UserID      string
	UserName    string
	UserEmail   string
	UserPhone   string
	Date        string
	Time        string
	Duration    int
	Price       float64
	Status      string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
