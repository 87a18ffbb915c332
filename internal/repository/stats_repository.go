package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/eventra-live/eventra-admin-api/internal/models"
)

// StatsRepository runs the aggregate count queries behind the dashboard.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository creates a new repository instance.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Collect gathers the headline counters in one round trip.
func (r *StatsRepository) Collect(ctx context.Context) (*models.DashboardStats, error) {
	const query = `SELECT
		(SELECT COUNT(*) FROM events) AS total_events,
		(SELECT COUNT(*) FROM events WHERE active = TRUE) AS active_events,
		(SELECT COUNT(*) FROM users) AS total_users,
		(SELECT COUNT(*) FROM registrations) AS total_registrations,
		(SELECT COUNT(*) FROM registrations WHERE payment_status = 'pending') AS pending_payments,
		(SELECT COUNT(*) FROM complaints WHERE status <> 'resolved') AS open_complaints,
		(SELECT COUNT(*) FROM feedback) AS total_feedback`

	var row struct {
		TotalEvents        int `db:"total_events"`
		ActiveEvents       int `db:"active_events"`
		TotalUsers         int `db:"total_users"`
		TotalRegistrations int `db:"total_registrations"`
		PendingPayments    int `db:"pending_payments"`
		OpenComplaints     int `db:"open_complaints"`
		TotalFeedback      int `db:"total_feedback"`
	}
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return nil, fmt.Errorf("collect dashboard stats: %w", err)
	}

	return &models.DashboardStats{
		TotalEvents:        row.TotalEvents,
		ActiveEvents:       row.ActiveEvents,
		TotalUsers:         row.TotalUsers,
		TotalRegistrations: row.TotalRegistrations,
		PendingPayments:    row.PendingPayments,
		OpenComplaints:     row.OpenComplaints,
		TotalFeedback:      row.TotalFeedback,
	}, nil
}
