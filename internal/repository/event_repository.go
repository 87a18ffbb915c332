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

// EventRepository handles persistence for events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates a new repository instance.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, description, start_date, end_date, start_time, end_time, location, venue, map_url, event_type, capacity, ticket_price, max_registrations, registration_deadline, banner_image, sponsors, speakers, schedules, active, created_at, updated_at`

// List returns events matching filters with pagination metadata.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	base := "FROM events WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.EventType != "" {
		conditions = append(conditions, fmt.Sprintf("event_type = $%d", len(args)+1))
		args = append(args, filter.EventType)
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("start_date >= $%d", len(args)+1))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("start_date <= $%d", len(args)+1))
		args = append(args, *filter.To)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(title) LIKE $%d OR LOWER(location) LIKE $%d OR LOWER(venue) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "start_date"
	}
	allowedSorts := map[string]bool{
		"title":      true,
		"start_date": true,
		"event_type": true,
		"capacity":   true,
		"created_at": true,
		"updated_at": true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "start_date"
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", eventColumns, base, sortBy, order, size, offset)
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	return events, total, nil
}

// FindByID returns an event by id.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find event by id: %w", err)
	}
	return &event, nil
}

// Create persists a new event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now

	const query = `INSERT INTO events (id, title, description, start_date, end_date, start_time, end_time, location, venue, map_url, event_type, capacity, ticket_price, max_registrations, registration_deadline, banner_image, sponsors, speakers, schedules, active, created_at, updated_at) VALUES (:id, :title, :description, :start_date, :end_date, :start_time, :end_time, :location, :venue, :map_url, :event_type, :capacity, :ticket_price, :max_registrations, :registration_deadline, :banner_image, :sponsors, :speakers, :schedules, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Update modifies an event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now().UTC()
	const query = `UPDATE events SET title = :title, description = :description, start_date = :start_date, end_date = :end_date, start_time = :start_time, end_time = :end_time, location = :location, venue = :venue, map_url = :map_url, event_type = :event_type, capacity = :capacity, ticket_price = :ticket_price, max_registrations = :max_registrations, registration_deadline = :registration_deadline, banner_image = :banner_image, sponsors = :sponsors, speakers = :speakers, schedules = :schedules, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// SetActive toggles the active flag of an event.
func (r *EventRepository) SetActive(ctx context.Context, id string, active bool) error {
	const query = `UPDATE events SET active = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, active, time.Now().UTC()); err != nil {
		return fmt.Errorf("set event active: %w", err)
	}
	return nil
}

// Delete removes an event record.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// CountRegistrations returns the number of registrations for an event.
func (r *EventRepository) CountRegistrations(ctx context.Context, id string) (int, error) {
	const query = `SELECT COUNT(*) FROM registrations WHERE event_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count event registrations: %w", err)
	}
	return count, nil
}
