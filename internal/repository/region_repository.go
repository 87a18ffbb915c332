package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eventra-live/eventra-admin-api/internal/models"
)

// RegionRepository handles persistence for regions.
type RegionRepository struct {
	db *sqlx.DB
}

// NewRegionRepository creates a new repository instance.
func NewRegionRepository(db *sqlx.DB) *RegionRepository {
	return &RegionRepository{db: db}
}

// List returns regions matching filters with pagination metadata.
func (r *RegionRepository) List(ctx context.Context, filter models.RegionFilter) ([]models.Region, int, error) {
	base := "FROM regions WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.State != "" {
		conditions = append(conditions, fmt.Sprintf("state = $%d", len(args)+1))
		args = append(args, filter.State)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(code) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "name"
	}
	allowedSorts := map[string]bool{
		"name":       true,
		"code":       true,
		"state":      true,
		"created_at": true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "name"
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
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

	query := fmt.Sprintf("SELECT id, name, code, state, created_at, updated_at %s ORDER BY %s %s LIMIT %d OFFSET %d", base, sortBy, order, size, offset)
	var regions []models.Region
	if err := r.db.SelectContext(ctx, &regions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list regions: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count regions: %w", err)
	}

	return regions, total, nil
}

// FindByID returns a region by id.
func (r *RegionRepository) FindByID(ctx context.Context, id string) (*models.Region, error) {
	const query = `SELECT id, name, code, state, created_at, updated_at FROM regions WHERE id = $1`
	var region models.Region
	if err := r.db.GetContext(ctx, &region, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find region by id: %w", err)
	}
	return &region, nil
}

// ExistsByCode checks uniqueness of the region code.
func (r *RegionRepository) ExistsByCode(ctx context.Context, code string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM regions WHERE LOWER(code) = LOWER($1)"
	args := []interface{}{code}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}

	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check region code: %w", err)
	}
	return true, nil
}

// Create persists a new region.
func (r *RegionRepository) Create(ctx context.Context, region *models.Region) error {
	if region.ID == "" {
		region.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if region.CreatedAt.IsZero() {
		region.CreatedAt = now
	}
	region.UpdatedAt = now

	const query = `INSERT INTO regions (id, name, code, state, created_at, updated_at) VALUES (:id, :name, :code, :state, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, region); err != nil {
		return fmt.Errorf("create region: %w", err)
	}
	return nil
}

// Update modifies a region.
func (r *RegionRepository) Update(ctx context.Context, region *models.Region) error {
	region.UpdatedAt = time.Now().UTC()
	const query = `UPDATE regions SET name = :name, code = :code, state = :state, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, region); err != nil {
		return fmt.Errorf("update region: %w", err)
	}
	return nil
}

// Delete removes a region record.
func (r *RegionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM regions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete region: %w", err)
	}
	return nil
}

// CountUsers returns the number of users assigned to the region.
func (r *RegionRepository) CountUsers(ctx context.Context, id string) (int, error) {
	const query = `SELECT COUNT(*) FROM users WHERE region_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count region users: %w", err)
	}
	return count, nil
}
