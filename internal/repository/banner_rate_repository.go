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

// BannerRateRepository handles persistence for banner ad pricing tiers.
type BannerRateRepository struct {
	db *sqlx.DB
}

// NewBannerRateRepository creates a new repository instance.
func NewBannerRateRepository(db *sqlx.DB) *BannerRateRepository {
	return &BannerRateRepository{db: db}
}

// List returns banner rates matching filters with pagination metadata.
func (r *BannerRateRepository) List(ctx context.Context, filter models.BannerRateFilter) ([]models.BannerRate, int, error) {
	base := "FROM banner_rates WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("CAST(days AS TEXT) LIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "days"
	}
	allowedSorts := map[string]bool{
		"days":       true,
		"cost":       true,
		"created_at": true,
		"updated_at": true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "days"
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

	query := fmt.Sprintf("SELECT id, days, cost, active, created_at, updated_at %s ORDER BY %s %s LIMIT %d OFFSET %d", base, sortBy, order, size, offset)
	var rates []models.BannerRate
	if err := r.db.SelectContext(ctx, &rates, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list banner rates: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count banner rates: %w", err)
	}

	return rates, total, nil
}

// FindByID returns a banner rate by id.
func (r *BannerRateRepository) FindByID(ctx context.Context, id string) (*models.BannerRate, error) {
	const query = `SELECT id, days, cost, active, created_at, updated_at FROM banner_rates WHERE id = $1`
	var rate models.BannerRate
	if err := r.db.GetContext(ctx, &rate, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find banner rate by id: %w", err)
	}
	return &rate, nil
}

// ExistsByDays checks uniqueness of the day count across rates.
func (r *BannerRateRepository) ExistsByDays(ctx context.Context, days int, excludeID string) (bool, error) {
	query := "SELECT 1 FROM banner_rates WHERE days = $1"
	args := []interface{}{days}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}

	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check banner rate days: %w", err)
	}
	return true, nil
}

// Create persists a new banner rate.
func (r *BannerRateRepository) Create(ctx context.Context, rate *models.BannerRate) error {
	if rate.ID == "" {
		rate.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rate.CreatedAt.IsZero() {
		rate.CreatedAt = now
	}
	rate.UpdatedAt = now

	const query = `INSERT INTO banner_rates (id, days, cost, active, created_at, updated_at) VALUES (:id, :days, :cost, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, rate); err != nil {
		return fmt.Errorf("create banner rate: %w", err)
	}
	return nil
}

// Update modifies a banner rate.
func (r *BannerRateRepository) Update(ctx context.Context, rate *models.BannerRate) error {
	rate.UpdatedAt = time.Now().UTC()
	const query = `UPDATE banner_rates SET days = :days, cost = :cost, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, rate); err != nil {
		return fmt.Errorf("update banner rate: %w", err)
	}
	return nil
}

// SetActive toggles the active flag of a banner rate.
func (r *BannerRateRepository) SetActive(ctx context.Context, id string, active bool) error {
	const query = `UPDATE banner_rates SET active = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, active, time.Now().UTC()); err != nil {
		return fmt.Errorf("set banner rate active: %w", err)
	}
	return nil
}

// Delete removes a banner rate record.
func (r *BannerRateRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM banner_rates WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete banner rate: %w", err)
	}
	return nil
}

// CountActiveAds returns the number of running banner ads booked at this rate.
func (r *BannerRateRepository) CountActiveAds(ctx context.Context, id string) (int, error) {
	const query = `SELECT COUNT(*) FROM banner_ads WHERE rate_id = $1 AND ends_at > NOW()`
	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count active banner ads: %w", err)
	}
	return count, nil
}
