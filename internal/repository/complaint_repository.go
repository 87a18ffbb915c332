package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eventra-live/eventra-admin-api/internal/models"
)

// ComplaintRepository handles persistence for complaints.
type ComplaintRepository struct {
	db *sqlx.DB
}

// NewComplaintRepository creates a new repository instance.
func NewComplaintRepository(db *sqlx.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

const complaintColumns = `id, user_id, name, email, subject, message, status, resolved_at, created_at, updated_at`

// List returns complaints matching filters with pagination metadata.
func (r *ComplaintRepository) List(ctx context.Context, filter models.ComplaintFilter) ([]models.Complaint, int, error) {
	base := "FROM complaints WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(subject) LIKE $%d OR LOWER(name) LIKE $%d OR LOWER(email) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	allowedSorts := map[string]bool{
		"subject":    true,
		"status":     true,
		"created_at": true,
		"updated_at": true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "created_at"
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 10
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", complaintColumns, base, sortBy, order, size, offset)
	var complaints []models.Complaint
	if err := r.db.SelectContext(ctx, &complaints, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list complaints: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count complaints: %w", err)
	}

	return complaints, total, nil
}

// FindByID returns a complaint by id.
func (r *ComplaintRepository) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE id = $1`, complaintColumns)
	var complaint models.Complaint
	if err := r.db.GetContext(ctx, &complaint, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find complaint by id: %w", err)
	}
	return &complaint, nil
}

// UpdateStatus transitions a complaint's workflow state. The resolved
// timestamp is set when entering the resolved state and cleared otherwise.
func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) error {
	now := time.Now().UTC()
	var resolvedAt *time.Time
	if status == models.ComplaintResolved {
		resolvedAt = &now
	}
	const query = `UPDATE complaints SET status = $2, resolved_at = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, resolvedAt, now); err != nil {
		return fmt.Errorf("update complaint status: %w", err)
	}
	return nil
}

// Delete removes a complaint record.
func (r *ComplaintRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM complaints WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete complaint: %w", err)
	}
	return nil
}
