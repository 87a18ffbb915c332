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

// UPISettingRepository handles persistence for UPI payment settings.
type UPISettingRepository struct {
	db *sqlx.DB
}

// NewUPISettingRepository creates a new repository instance.
func NewUPISettingRepository(db *sqlx.DB) *UPISettingRepository {
	return &UPISettingRepository{db: db}
}

const upiColumns = `id, upi_id, display_name, qr_image, active, created_at, updated_at`

// List returns UPI settings matching filters with pagination metadata.
func (r *UPISettingRepository) List(ctx context.Context, filter models.UPISettingFilter) ([]models.UPISetting, int, error) {
	base := "FROM upi_settings WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(upi_id) LIKE $%d OR LOWER(display_name) LIKE $%d)", len(args)+1, len(args)+1))
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
		"upi_id":       true,
		"display_name": true,
		"created_at":   true,
		"updated_at":   true,
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", upiColumns, base, sortBy, order, size, offset)
	var settings []models.UPISetting
	if err := r.db.SelectContext(ctx, &settings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list upi settings: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count upi settings: %w", err)
	}

	return settings, total, nil
}

// FindByID returns a UPI setting by id.
func (r *UPISettingRepository) FindByID(ctx context.Context, id string) (*models.UPISetting, error) {
	query := fmt.Sprintf(`SELECT %s FROM upi_settings WHERE id = $1`, upiColumns)
	var setting models.UPISetting
	if err := r.db.GetContext(ctx, &setting, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find upi setting by id: %w", err)
	}
	return &setting, nil
}

// ExistsByUPIID checks uniqueness of the UPI identifier.
func (r *UPISettingRepository) ExistsByUPIID(ctx context.Context, upiID string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM upi_settings WHERE LOWER(upi_id) = LOWER($1)"
	args := []interface{}{upiID}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}

	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check upi id: %w", err)
	}
	return true, nil
}

// Create persists a new UPI setting.
func (r *UPISettingRepository) Create(ctx context.Context, setting *models.UPISetting) error {
	if setting.ID == "" {
		setting.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if setting.CreatedAt.IsZero() {
		setting.CreatedAt = now
	}
	setting.UpdatedAt = now

	const query = `INSERT INTO upi_settings (id, upi_id, display_name, qr_image, active, created_at, updated_at) VALUES (:id, :upi_id, :display_name, :qr_image, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, setting); err != nil {
		return fmt.Errorf("create upi setting: %w", err)
	}
	return nil
}

// Update modifies a UPI setting.
func (r *UPISettingRepository) Update(ctx context.Context, setting *models.UPISetting) error {
	setting.UpdatedAt = time.Now().UTC()
	const query = `UPDATE upi_settings SET upi_id = :upi_id, display_name = :display_name, qr_image = :qr_image, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, setting); err != nil {
		return fmt.Errorf("update upi setting: %w", err)
	}
	return nil
}

// Activate marks one setting active and deactivates the rest in a single
// transaction, keeping the single-active invariant.
func (r *UPISettingRepository) Activate(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin activate upi setting: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `UPDATE upi_settings SET active = FALSE, updated_at = $1 WHERE active = TRUE AND id <> $2`, now, id); err != nil {
		return fmt.Errorf("deactivate upi settings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE upi_settings SET active = TRUE, updated_at = $1 WHERE id = $2`, now, id); err != nil {
		return fmt.Errorf("activate upi setting: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit activate upi setting: %w", err)
	}
	return nil
}

// Deactivate clears the active flag of one setting.
func (r *UPISettingRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE upi_settings SET active = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate upi setting: %w", err)
	}
	return nil
}

// Delete removes a UPI setting record.
func (r *UPISettingRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM upi_settings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete upi setting: %w", err)
	}
	return nil
}
