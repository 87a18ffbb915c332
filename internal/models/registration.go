package models

import "time"

// PaymentStatus enumerates registration payment states.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// ValidPaymentStatus reports whether s is a known payment state.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Registration is one attendee registration for an event.
type Registration struct {
	ID            string        `db:"id" json:"id"`
	EventID       string        `db:"event_id" json:"eventId"`
	UserID        *string       `db:"user_id" json:"userId,omitempty"`
	Name          string        `db:"name" json:"name"`
	Email         string        `db:"email" json:"email"`
	Phone         string        `db:"phone" json:"phone"`
	Tickets       int           `db:"tickets" json:"tickets"`
	Amount        float64       `db:"amount" json:"amount"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"paymentStatus"`
	PaymentRef    string        `db:"payment_ref" json:"paymentRef,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updatedAt"`
}

// RegistrationFilter captures filters for listing registrations.
type RegistrationFilter struct {
	EventID       string
	PaymentStatus *PaymentStatus
	Search        string
	Page          int
	PageSize      int
	SortBy        string
	SortOrder     string
}
