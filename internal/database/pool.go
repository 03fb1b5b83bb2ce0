package database

import (
	"context"
	"log/slog"
	"time"
)

// PoolStats - срез sql.DBStats для /health
type PoolStats struct {
	Open    int           `json:"open"`
	InUse   int           `json:"in_use"`
	Idle    int           `json:"idle"`
	Waits   int64         `json:"waits"`
	WaitFor time.Duration `json:"wait_for"`
}

// StoreHealth is the catalog store's answer to a readiness probe
type StoreHealth struct {
	Healthy bool          `json:"healthy"`
	Latency time.Duration `json:"latency"`
	Error   string        `json:"error,omitempty"`
	Pool    PoolStats     `json:"pool"`
}

func (db *DB) poolStats() PoolStats {
	s := db.Stats()
	return PoolStats{
		Open:    s.OpenConnections,
		InUse:   s.InUse,
		Idle:    s.Idle,
		Waits:   s.WaitCount,
		WaitFor: s.WaitDuration,
	}
}

// Probe pings the store, giving up after two seconds
func (db *DB) Probe(ctx context.Context) StoreHealth {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := db.PingContext(ctx)
	h := StoreHealth{Healthy: err == nil, Latency: time.Since(start), Pool: db.poolStats()}
	if err != nil {
		h.Error = err.Error()
		slog.Error("Catalog store probe failed", "error", err)
	}
	return h
}
