package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aquasolar-cloud/internal/domain"
)

func newTestReportBuilder(consumption *fakeConsumptionRepo, logs *fakeLogsRepo) *ReportBuilder {
	b := NewReportBuilder(consumption, logs, &fakeAlertsRepo{}, zap.NewNop())
	b.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	return b
}

func TestUsageDefaultsToTrailingThirtyDays(t *testing.T) {
	b := newTestReportBuilder(&fakeConsumptionRepo{}, &fakeLogsRepo{})

	report, err := b.Usage(context.Background(), "TEN_A", "", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "2025-05-16", report.StartDate)
	assert.Equal(t, "2025-06-15", report.EndDate)
}

func TestUsageTotalsConsumption(t *testing.T) {
	consumption := &fakeConsumptionRepo{rows: []*domain.ConsumptionRecord{
		{ConsID: "CONS_AAAA1111", ConsumptionDate: "2025-06-13", ConsumptionTotal: 5.5, PumpCycles: 3},
		{ConsID: "CONS_BBBB2222", ConsumptionDate: "2025-06-14", ConsumptionTotal: 4.25, PumpCycles: 2},
	}}
	b := newTestReportBuilder(consumption, &fakeLogsRepo{})

	report, err := b.Usage(context.Background(), "TEN_A", "2025-06-01", "2025-06-15", 0)
	require.NoError(t, err)
	assert.Equal(t, 9.75, report.TotalVolumeL)
	assert.Equal(t, 5, report.TotalCycles)
	assert.Len(t, report.Consumption, 2)
}

func TestUsageCoversWholeLastDay(t *testing.T) {
	logs := &fakeLogsRepo{}
	b := newTestReportBuilder(&fakeConsumptionRepo{}, logs)

	_, err := b.Usage(context.Background(), "TEN_A", "2025-06-01", "2025-06-10", 0)
	require.NoError(t, err)

	require.NotNil(t, logs.lastFilters.Start)
	require.NotNil(t, logs.lastFilters.End)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *logs.lastFilters.Start)
	assert.True(t, logs.lastFilters.End.After(time.Date(2025, 6, 10, 23, 59, 59, 0, time.UTC)),
		"entries written late on the end date must be inside the range")
}

func TestUsageCapsTailLimit(t *testing.T) {
	logs := &fakeLogsRepo{}
	b := newTestReportBuilder(&fakeConsumptionRepo{}, logs)

	_, err := b.Usage(context.Background(), "TEN_A", "2025-06-01", "2025-06-10", 9999)
	require.NoError(t, err)
	assert.Equal(t, maxReportTail, logs.lastFilters.Limit)
}

func TestUsageRejectsMalformedDates(t *testing.T) {
	b := newTestReportBuilder(&fakeConsumptionRepo{}, &fakeLogsRepo{})

	_, err := b.Usage(context.Background(), "TEN_A", "06/01/2025", "2025-06-10", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start_date")

	_, err = b.Usage(context.Background(), "TEN_A", "2025-06-10", "2025-06-01", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after")
}

func TestUsageRequiresTenantID(t *testing.T) {
	b := newTestReportBuilder(&fakeConsumptionRepo{}, &fakeLogsRepo{})

	_, err := b.Usage(context.Background(), "", "", "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tenant_id")
}
