package models

import "time"

// DashboardStats aggregates the headline counters shown on the console
// landing page. Served from a Redis cache with a short TTL.
type DashboardStats struct {
	TotalEvents        int       `json:"totalEvents"`
	ActiveEvents       int       `json:"activeEvents"`
	TotalUsers         int       `json:"totalUsers"`
	TotalRegistrations int       `json:"totalRegistrations"`
	PendingPayments    int       `json:"pendingPayments"`
	OpenComplaints     int       `json:"openComplaints"`
	TotalFeedback      int       `json:"totalFeedback"`
	GeneratedAt        time.Time `json:"generatedAt"`
}
