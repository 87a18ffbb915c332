package models

import "time"

// ComplaintStatus enumerates complaint workflow states.
type ComplaintStatus string

const (
	ComplaintOpen     ComplaintStatus = "open"
	ComplaintInReview ComplaintStatus = "in_review"
	ComplaintResolved ComplaintStatus = "resolved"
)

// ValidComplaintStatus reports whether s is a known workflow state.
func ValidComplaintStatus(s ComplaintStatus) bool {
	switch s {
	case ComplaintOpen, ComplaintInReview, ComplaintResolved:
		return true
	}
	return false
}

// Complaint is a member-submitted complaint record.
type Complaint struct {
	ID         string          `db:"id" json:"id"`
	UserID     *string         `db:"user_id" json:"userId,omitempty"`
	Name       string          `db:"name" json:"name"`
	Email      string          `db:"email" json:"email"`
	Subject    string          `db:"subject" json:"subject"`
	Message    string          `db:"message" json:"message"`
	Status     ComplaintStatus `db:"status" json:"status"`
	ResolvedAt *time.Time      `db:"resolved_at" json:"resolvedAt,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updatedAt"`
}

// ComplaintFilter captures filters for listing complaints.
type ComplaintFilter struct {
	Status    *ComplaintStatus
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
