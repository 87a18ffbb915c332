package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eventra-live/eventra-admin-api/internal/models"
)

// ExportRepository handles persistence for export job metadata.
type ExportRepository struct {
	db *sqlx.DB
}

// NewExportRepository creates a new repository instance.
func NewExportRepository(db *sqlx.DB) *ExportRepository {
	return &ExportRepository{db: db}
}

const exportColumns = `id, params, status, result_path, created_by, created_at, finished_at, error_message`

// Create persists a queued export job.
func (r *ExportRepository) Create(ctx context.Context, job *models.ExportJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	if job.Status == "" {
		job.Status = models.ExportStatusQueued
	}
	const query = `INSERT INTO export_jobs (id, params, status, result_path, created_by, created_at, finished_at, error_message) VALUES (:id, :params, :status, :result_path, :created_by, :created_at, :finished_at, :error_message)`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("create export job: %w", err)
	}
	return nil
}

// FindByID returns an export job by id.
func (r *ExportRepository) FindByID(ctx context.Context, id string) (*models.ExportJob, error) {
	query := fmt.Sprintf(`SELECT %s FROM export_jobs WHERE id = $1`, exportColumns)
	var job models.ExportJob
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find export job by id: %w", err)
	}
	return &job, nil
}

// ListByUser returns a user's export jobs, newest first.
func (r *ExportRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.ExportJob, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT %s FROM export_jobs WHERE created_by = $1 ORDER BY created_at DESC LIMIT %d`, exportColumns, limit)
	var jobs []models.ExportJob
	if err := r.db.SelectContext(ctx, &jobs, query, userID); err != nil {
		return nil, fmt.Errorf("list export jobs: %w", err)
	}
	return jobs, nil
}

// MarkProcessing flags a job as picked up by a worker.
func (r *ExportRepository) MarkProcessing(ctx context.Context, id string) error {
	const query = `UPDATE export_jobs SET status = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, models.ExportStatusProcessing); err != nil {
		return fmt.Errorf("mark export processing: %w", err)
	}
	return nil
}

// MarkFinished stores the result path and flags the job finished.
func (r *ExportRepository) MarkFinished(ctx context.Context, id, resultPath string) error {
	now := time.Now().UTC()
	const query = `UPDATE export_jobs SET status = $2, result_path = $3, finished_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, models.ExportStatusFinished, resultPath, now); err != nil {
		return fmt.Errorf("mark export finished: %w", err)
	}
	return nil
}

// MarkFailed records the failure reason.
func (r *ExportRepository) MarkFailed(ctx context.Context, id, reason string) error {
	now := time.Now().UTC()
	const query = `UPDATE export_jobs SET status = $2, error_message = $3, finished_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, models.ExportStatusFailed, reason, now); err != nil {
		return fmt.Errorf("mark export failed: %w", err)
	}
	return nil
}
