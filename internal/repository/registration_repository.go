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

// RegistrationRepository handles persistence for event registrations.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository creates a new repository instance.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

const registrationColumns = `id, event_id, user_id, name, email, phone, tickets, amount, payment_status, payment_ref, created_at, updated_at`

// List returns registrations matching filters with pagination metadata.
func (r *RegistrationRepository) List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, int, error) {
	base := "FROM registrations WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.EventID != "" {
		conditions = append(conditions, fmt.Sprintf("event_id = $%d", len(args)+1))
		args = append(args, filter.EventID)
	}
	if filter.PaymentStatus != nil {
		conditions = append(conditions, fmt.Sprintf("payment_status = $%d", len(args)+1))
		args = append(args, *filter.PaymentStatus)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(email) LIKE $%d OR phone LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
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
		"name":           true,
		"email":          true,
		"amount":         true,
		"payment_status": true,
		"created_at":     true,
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", registrationColumns, base, sortBy, order, size, offset)
	var regs []models.Registration
	if err := r.db.SelectContext(ctx, &regs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count registrations: %w", err)
	}

	return regs, total, nil
}

// ListAllForEvent returns every registration of an event, used by exports.
// An optional payment status narrows the set.
func (r *RegistrationRepository) ListAllForEvent(ctx context.Context, eventID string, status *models.PaymentStatus) ([]models.Registration, error) {
	query := fmt.Sprintf("SELECT %s FROM registrations WHERE event_id = $1", registrationColumns)
	args := []interface{}{eventID}
	if status != nil {
		query += " AND payment_status = $2"
		args = append(args, *status)
	}
	query += " ORDER BY created_at ASC"

	var regs []models.Registration
	if err := r.db.SelectContext(ctx, &regs, query, args...); err != nil {
		return nil, fmt.Errorf("list event registrations: %w", err)
	}
	return regs, nil
}

// FindByID returns a registration by id.
func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (*models.Registration, error) {
	query := fmt.Sprintf(`SELECT %s FROM registrations WHERE id = $1`, registrationColumns)
	var reg models.Registration
	if err := r.db.GetContext(ctx, &reg, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find registration by id: %w", err)
	}
	return &reg, nil
}

// UpdatePaymentStatus transitions a registration's payment state.
func (r *RegistrationRepository) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) error {
	const query = `UPDATE registrations SET payment_status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	return nil
}

// Delete removes a registration record.
func (r *RegistrationRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}
