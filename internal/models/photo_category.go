package models

import "time"

// PhotoCategory groups gallery photos.
type PhotoCategory struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	Active      bool      `db:"active" json:"isActive"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// PhotoCategoryFilter captures filters for listing photo categories.
type PhotoCategoryFilter struct {
	Active    *bool
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
