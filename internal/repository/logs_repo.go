package repository

import (
	"context"
	"time"

	"aquasolar-cloud/internal/domain"
)

// LogsRepository the three throttled append-only streams (sensor, power,
// control). Entries are immutable once written; there is no update or
// delete surface here on purpose.
type LogsRepository interface {
	InsertSensorLog(ctx context.Context, log *domain.SensorLog) error
	InsertPowerLog(ctx context.Context, log *domain.PowerLog) error
	InsertControlLog(ctx context.Context, log *domain.ControlLog) error

	// List* return the newest entries first, bounded by filters.Limit,
	// optionally restricted to a closed time range.
	ListSensorLogs(ctx context.Context, tenantID string, filters LogFilters) ([]*domain.SensorLog, error)
	ListPowerLogs(ctx context.Context, tenantID string, filters LogFilters) ([]*domain.PowerLog, error)
	ListControlLogs(ctx context.Context, tenantID string, filters LogFilters) ([]*domain.ControlLog, error)
}

// LogFilters closed time range plus a tail bound.
type LogFilters struct {
	Start *time.Time // optional, timestamp >= Start
	End   *time.Time // optional, timestamp <= End
	Limit int        // 0 means the default tail length
}

const (
	defaultLogTail = 50
	maxLogTail     = 500
)

func (f LogFilters) tail() int {
	if f.Limit <= 0 {
		return defaultLogTail
	}
	if f.Limit > maxLogTail {
		return maxLogTail
	}
	return f.Limit
}
