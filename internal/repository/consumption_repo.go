package repository

import (
	"context"

	"aquasolar-cloud/internal/domain"
)

// ConsumptionRepository the per-day consumption counters. Increment must be
// atomic at the store so that two pushes racing past the interval gate both
// land; read-modify-write is not acceptable here.
type ConsumptionRepository interface {
	// Increment adds volume and cycles to the (tenant, date) row, creating
	// it on the first push of the day. date is YYYY-MM-DD.
	Increment(ctx context.Context, tenantID, date string, volume float64, cycles int) error

	// ListRange returns the per-day rows with startDate <= date <= endDate,
	// oldest first. Rows that fail to scan are skipped, not fatal.
	ListRange(ctx context.Context, tenantID, startDate, endDate string) ([]*domain.ConsumptionRecord, error)

	// SumRange totals volume and cycles over the closed date range.
	SumRange(ctx context.Context, tenantID, startDate, endDate string) (float64, int, error)
}
