package models

import (
	"database/sql/driver"
	"time"
)

// ExportFormat enumerates supported export formats.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportStatus captures background job lifecycle states.
type ExportStatus string

const (
	ExportStatusQueued     ExportStatus = "QUEUED"
	ExportStatusProcessing ExportStatus = "PROCESSING"
	ExportStatusFinished   ExportStatus = "FINISHED"
	ExportStatusFailed     ExportStatus = "FAILED"
)

// ExportJob is persisted background export metadata.
type ExportJob struct {
	ID           string          `db:"id" json:"id"`
	Params       ExportJobParams `db:"params" json:"params"`
	Status       ExportStatus    `db:"status" json:"status"`
	ResultPath   *string         `db:"result_path" json:"-"`
	DownloadURL  *string         `db:"-" json:"downloadUrl,omitempty"`
	CreatedBy    string          `db:"created_by" json:"createdBy"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
	FinishedAt   *time.Time      `db:"finished_at" json:"finishedAt,omitempty"`
	ErrorMessage *string         `db:"error_message" json:"errorMessage,omitempty"`
}

// ExportJobParams stores request-scoped options persisted as JSONB.
type ExportJobParams struct {
	EventID       string         `json:"eventId"`
	Format        ExportFormat   `json:"format"`
	PaymentStatus *PaymentStatus `json:"paymentStatus,omitempty"`
}

// Value marshals params to JSON for persistence.
func (p ExportJobParams) Value() (driver.Value, error) { return jsonbValue(p) }

// Scan unmarshals JSON payloads into the params struct.
func (p *ExportJobParams) Scan(value interface{}) error { return jsonbScan(value, p) }
