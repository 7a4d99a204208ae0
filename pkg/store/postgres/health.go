package postgres

import (
	"context"
	"time"
)

// HealthStatus reports store connectivity and pool statistics.
type HealthStatus struct {
	Status          string
	ResponseTime    time.Duration
	AcquiredConns   int32
	IdleConns       int32
	MaxConns        int32
	TotalConns      int32
	NewConnsCount   int64
	EmptyAcquireCnt int64
}

// Health pings p and reports its pool statistics.
func Health(ctx context.Context, p *Pool) (*HealthStatus, error) {
	start := time.Now()
	if err := p.Ping(ctx); err != nil {
		return &HealthStatus{Status: "unhealthy", ResponseTime: time.Since(start)}, err
	}

	stat := p.Stat()
	return &HealthStatus{
		Status:          "healthy",
		ResponseTime:    time.Since(start),
		AcquiredConns:   stat.AcquiredConns(),
		IdleConns:       stat.IdleConns(),
		MaxConns:        stat.MaxConns(),
		TotalConns:      stat.TotalConns(),
		NewConnsCount:   stat.NewConnsCount(),
		EmptyAcquireCnt: stat.EmptyAcquireCount(),
	}, nil
}
