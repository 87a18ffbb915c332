package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/eventra-live/eventra-admin-api/internal/models"
)

// FeedbackRepository handles persistence for feedback entries.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository creates a new repository instance.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// List returns feedback entries matching filters with pagination metadata.
func (r *FeedbackRepository) List(ctx context.Context, filter models.FeedbackFilter) ([]models.Feedback, int, error) {
	base := "FROM feedback WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Rating != nil {
		conditions = append(conditions, fmt.Sprintf("rating = $%d", len(args)+1))
		args = append(args, *filter.Rating)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(email) LIKE $%d OR LOWER(message) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
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
		"rating":     true,
		"created_at": true,
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

	query := fmt.Sprintf("SELECT id, user_id, name, email, rating, message, created_at %s ORDER BY %s %s LIMIT %d OFFSET %d", base, sortBy, order, size, offset)
	var entries []models.Feedback
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list feedback: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count feedback: %w", err)
	}

	return entries, total, nil
}

// FindByID returns a feedback entry by id.
func (r *FeedbackRepository) FindByID(ctx context.Context, id string) (*models.Feedback, error) {
	const query = `SELECT id, user_id, name, email, rating, message, created_at FROM feedback WHERE id = $1`
	var entry models.Feedback
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find feedback by id: %w", err)
	}
	return &entry, nil
}

// Delete removes a feedback record.
func (r *FeedbackRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM feedback WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	return nil
}
