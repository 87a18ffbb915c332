package models

import "time"

// BannerRate is a pricing tier for banner ad placements.
type BannerRate struct {
	ID        string    `db:"id" json:"id"`
	Days      int       `db:"days" json:"days"`
	Cost      float64   `db:"cost" json:"cost"`
	Active    bool      `db:"active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// BannerRateFilter captures filters for listing banner rates.
type BannerRateFilter struct {
	Active    *bool
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
