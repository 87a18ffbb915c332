package models

import "time"

// Region is a geographic unit members and events belong to.
type Region struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code"`
	State     string    `db:"state" json:"state"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// RegionFilter captures filters for listing regions.
type RegionFilter struct {
	State     string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
