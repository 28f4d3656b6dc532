package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"aquasolar-cloud/internal/domain"
	"aquasolar-cloud/internal/repository"
)

// maxReportTail bounds each stream tail in a usage report.
const maxReportTail = 500

// UsageReport one tenant's usage over a closed date range: the per-day
// consumption table with its totals, plus bounded newest-first tails of
// every log stream inside the range.
type UsageReport struct {
	TenantID    string
	StartDate   string
	EndDate     string
	GeneratedAt time.Time

	TotalVolumeL float64
	TotalCycles  int

	Consumption []*domain.ConsumptionRecord
	SensorLogs  []*domain.SensorLog
	PowerLogs   []*domain.PowerLog
	ControlLogs []*domain.ControlLog
	Alerts      []*domain.AlertLog
}

// ReportBuilder assembles usage reports from the durable streams.
type ReportBuilder struct {
	consumption repository.ConsumptionRepository
	logs        repository.LogsRepository
	alerts      repository.AlertsRepository
	logger      *zap.Logger

	now func() time.Time
}

func NewReportBuilder(
	consumption repository.ConsumptionRepository,
	logs repository.LogsRepository,
	alerts repository.AlertsRepository,
	logger *zap.Logger,
) *ReportBuilder {
	return &ReportBuilder{
		consumption: consumption,
		logs:        logs,
		alerts:      alerts,
		logger:      logger,
		now:         time.Now,
	}
}

// Usage builds the report. An empty end_date defaults to today, an empty
// start_date to thirty days before the end. limit bounds each stream tail,
// 0 meaning the stream default.
func (b *ReportBuilder) Usage(ctx context.Context, tenantID, startDate, endDate string, limit int) (*UsageReport, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}
	if limit < 0 {
		limit = 0
	}
	if limit > maxReportTail {
		limit = maxReportTail
	}
	now := b.now()

	if endDate == "" {
		endDate = now.Format("2006-01-02")
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end_date '%s': must be YYYY-MM-DD", endDate)
	}
	if startDate == "" {
		startDate = end.AddDate(0, 0, -30).Format("2006-01-02")
	}
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date '%s': must be YYYY-MM-DD", startDate)
	}
	if start.After(end) {
		return nil, fmt.Errorf("start_date '%s' is after end_date '%s'", startDate, endDate)
	}

	report := &UsageReport{
		TenantID:    tenantID,
		StartDate:   startDate,
		EndDate:     endDate,
		GeneratedAt: now,
	}

	days, err := b.consumption.ListRange(ctx, tenantID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load consumption: %w", err)
	}
	report.Consumption = days
	for _, day := range days {
		report.TotalVolumeL += day.ConsumptionTotal
		report.TotalCycles += day.PumpCycles
	}
	report.TotalVolumeL = round2(report.TotalVolumeL)

	// Log timestamps are instants; the closed date range covers the whole
	// last day.
	rangeStart := start
	rangeEnd := end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	filters := repository.LogFilters{Start: &rangeStart, End: &rangeEnd, Limit: limit}

	if report.SensorLogs, err = b.logs.ListSensorLogs(ctx, tenantID, filters); err != nil {
		return nil, fmt.Errorf("failed to load sensor logs: %w", err)
	}
	if report.PowerLogs, err = b.logs.ListPowerLogs(ctx, tenantID, filters); err != nil {
		return nil, fmt.Errorf("failed to load power logs: %w", err)
	}
	if report.ControlLogs, err = b.logs.ListControlLogs(ctx, tenantID, filters); err != nil {
		return nil, fmt.Errorf("failed to load control logs: %w", err)
	}

	alerts, _, err := b.alerts.ListAlerts(ctx, tenantID,
		repository.AlertFilters{Start: &rangeStart, End: &rangeEnd}, 1, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load alerts: %w", err)
	}
	report.Alerts = alerts

	b.logger.Debug("Usage report assembled",
		zap.String("tenant_id", tenantID),
		zap.String("start_date", startDate),
		zap.String("end_date", endDate),
		zap.Int("consumption_days", len(days)))
	return report, nil
}
