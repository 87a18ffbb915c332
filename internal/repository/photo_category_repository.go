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

// PhotoCategoryRepository handles persistence for gallery photo categories.
type PhotoCategoryRepository struct {
	db *sqlx.DB
}

// NewPhotoCategoryRepository creates a new repository instance.
func NewPhotoCategoryRepository(db *sqlx.DB) *PhotoCategoryRepository {
	return &PhotoCategoryRepository{db: db}
}

// List returns photo categories matching filters with pagination metadata.
func (r *PhotoCategoryRepository) List(ctx context.Context, filter models.PhotoCategoryFilter) ([]models.PhotoCategory, int, error) {
	base := "FROM photo_categories WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(description) LIKE $%d)", len(args)+1, len(args)+1))
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
		"created_at": true,
		"updated_at": true,
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

	query := fmt.Sprintf("SELECT id, name, description, active, created_at, updated_at %s ORDER BY %s %s LIMIT %d OFFSET %d", base, sortBy, order, size, offset)
	var categories []models.PhotoCategory
	if err := r.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list photo categories: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count photo categories: %w", err)
	}

	return categories, total, nil
}

// FindByID returns a photo category by id.
func (r *PhotoCategoryRepository) FindByID(ctx context.Context, id string) (*models.PhotoCategory, error) {
	const query = `SELECT id, name, description, active, created_at, updated_at FROM photo_categories WHERE id = $1`
	var category models.PhotoCategory
	if err := r.db.GetContext(ctx, &category, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find photo category by id: %w", err)
	}
	return &category, nil
}

// ExistsByName checks uniqueness of the category name.
func (r *PhotoCategoryRepository) ExistsByName(ctx context.Context, name string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM photo_categories WHERE LOWER(name) = LOWER($1)"
	args := []interface{}{name}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}

	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check photo category name: %w", err)
	}
	return true, nil
}

// Create persists a new photo category.
func (r *PhotoCategoryRepository) Create(ctx context.Context, category *models.PhotoCategory) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now

	const query = `INSERT INTO photo_categories (id, name, description, active, created_at, updated_at) VALUES (:id, :name, :description, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, category); err != nil {
		return fmt.Errorf("create photo category: %w", err)
	}
	return nil
}

// Update modifies a photo category.
func (r *PhotoCategoryRepository) Update(ctx context.Context, category *models.PhotoCategory) error {
	category.UpdatedAt = time.Now().UTC()
	const query = `UPDATE photo_categories SET name = :name, description = :description, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, category); err != nil {
		return fmt.Errorf("update photo category: %w", err)
	}
	return nil
}

// SetActive toggles the active flag of a photo category.
func (r *PhotoCategoryRepository) SetActive(ctx context.Context, id string, active bool) error {
	const query = `UPDATE photo_categories SET active = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, active, time.Now().UTC()); err != nil {
		return fmt.Errorf("set photo category active: %w", err)
	}
	return nil
}

// Delete removes a photo category record.
func (r *PhotoCategoryRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM photo_categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete photo category: %w", err)
	}
	return nil
}
