package models

import "time"

// SystemMetrics is a lightweight aggregate snapshot for the health endpoint.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
