package models

import "time"

// Feedback is a member-submitted feedback record. Read-mostly from the
// console: listed, inspected and occasionally deleted.
type Feedback struct {
	ID        string    `db:"id" json:"id"`
	UserID    *string   `db:"user_id" json:"userId,omitempty"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Rating    int       `db:"rating" json:"rating"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// FeedbackFilter captures filters for listing feedback.
type FeedbackFilter struct {
	Rating    *int
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
