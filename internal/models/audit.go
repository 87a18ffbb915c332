package models

import "time"

// AuditAction constants represent actions to be logged.
const (
	AuditActionLogin        = "LOGIN"
	AuditActionLogout       = "LOGOUT"
	AuditActionUserToggle   = "USER_TOGGLE"
	AuditActionUserDelete   = "USER_DELETE"
	AuditActionExportCreate = "EXPORT_CREATE"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	UserID     *string   `db:"user_id" json:"userId,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resourceId,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ipAddress"`
	UserAgent  string    `db:"user_agent" json:"userAgent"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
