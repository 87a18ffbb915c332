package models

import "time"

// UPISetting is a payment collection identity. At most one setting is
// active at a time; activating one deactivates the rest.
type UPISetting struct {
	ID          string    `db:"id" json:"id"`
	UPIID       string    `db:"upi_id" json:"upiId"`
	DisplayName string    `db:"display_name" json:"displayName"`
	QRImage     string    `db:"qr_image" json:"qrImage,omitempty"`
	Active      bool      `db:"active" json:"isActive"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// UPISettingFilter captures filters for listing UPI settings.
type UPISettingFilter struct {
	Active    *bool
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
