package repository

import (
	"context"
	"time"

	"aquasolar-cloud/internal/domain"
)

// AlertsRepository the alert stream. Rows are appended by the edge detector
// and only ever mutated by AcknowledgeAlert (Active -> Resolved).
type AlertsRepository interface {
	InsertAlert(ctx context.Context, alert *domain.AlertLog) error

	// ListAlerts returns a page of alerts, newest first, plus the total.
	ListAlerts(ctx context.Context, tenantID string, filters AlertFilters, page, size int) ([]*domain.AlertLog, int, error)

	// AcknowledgeAlert flips one alert to Resolved.
	AcknowledgeAlert(ctx context.Context, tenantID, alertID string) error
}

// AlertFilters list filters for ListAlerts.
type AlertFilters struct {
	Status string     // optional, Active/Resolved
	Type   string     // optional, Leakage / Low Battery
	Start  *time.Time // optional, alert_date >= Start
	End    *time.Time // optional, alert_date <= End
}
