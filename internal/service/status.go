package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"aquasolar-cloud/internal/repository"
	"aquasolar-cloud/internal/telemetry"
)

// StatusView the dashboard document for one tenant: live snapshot fields
// under their legacy key names, the liveness verdict and the consumption
// summary. Pump is "N/A" until the unit has reported at least once.
type StatusView struct {
	TenantID         string     `json:"tenant_id"`
	Pump             string     `json:"pump"`
	FlowIn           float64    `json:"flow_in"`
	FlowOut          float64    `json:"flow_out"`
	VolumeIn         float64    `json:"volume_in"`
	VolumeOut        float64    `json:"volume_out"`
	Leakage          bool       `json:"leakage"`
	BatteryPercent   float64    `json:"battery_percent"`
	BatteryVoltage   float64    `json:"battery_voltage"`
	CurrentConsumed  float64    `json:"current_consumed"`
	Online           bool       `json:"online"`
	LastUpdate       *time.Time `json:"last_update,omitempty"`
	ConsumptionDay   float64    `json:"consumption_day"`
	ConsumptionWeek  float64    `json:"consumption_week"`
	ConsumptionMonth float64    `json:"consumption_month"`
}

// FleetEntry one tenant row in the fleet overview, derived from the
// snapshot alone.
type FleetEntry struct {
	TenantID       string    `json:"tenant_id"`
	Pump           string    `json:"pump"`
	FlowIn         float64   `json:"flow_in"`
	BatteryPercent float64   `json:"battery_percent"`
	Leakage        bool      `json:"leakage"`
	Online         bool      `json:"online"`
	LastUpdate     time.Time `json:"last_update"`
}

// StatusProjector assembles dashboard views from the hot snapshot store
// and the consumption counters.
type StatusProjector struct {
	status      repository.StatusRepository
	consumption repository.ConsumptionRepository
	window      time.Duration
	logger      *zap.Logger

	now func() time.Time
}

func NewStatusProjector(
	status repository.StatusRepository,
	consumption repository.ConsumptionRepository,
	window time.Duration,
	logger *zap.Logger,
) *StatusProjector {
	return &StatusProjector{
		status:      status,
		consumption: consumption,
		window:      window,
		logger:      logger,
		now:         time.Now,
	}
}

// Project builds the status view for one tenant. A tenant that has never
// reported gets a zeroed view with Pump "N/A" and Online false rather
// than an error; the dashboard renders it as a dormant unit.
func (p *StatusProjector) Project(ctx context.Context, tenantID string) (*StatusView, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}
	now := p.now()

	snap, err := p.status.GetSnapshot(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	view := &StatusView{TenantID: tenantID, Pump: "N/A"}
	if snap != nil {
		view.Pump = snap.PumpState
		if view.Pump == "" {
			view.Pump = "OFF"
		}
		view.FlowIn = snap.FlowInLMin
		view.FlowOut = snap.FlowOutLMin
		view.VolumeIn = snap.VolumeInL
		view.VolumeOut = snap.VolumeOutL
		view.Leakage = snap.LeakageDetected
		view.BatteryPercent = snap.BatteryPercent
		view.BatteryVoltage = snap.BatteryVoltageV
		view.CurrentConsumed = snap.CurrentA
		view.Online = telemetry.Online(snap, p.window, now)
		last := snap.LastUpdate
		view.LastUpdate = &last
	}

	day, week, month := p.consumptionSummary(ctx, tenantID, now)
	view.ConsumptionDay = day
	view.ConsumptionWeek = week
	view.ConsumptionMonth = month
	return view, nil
}

// consumptionSummary totals today, the trailing 7 days and the trailing 30
// days, each as a closed date range ending today. Errors degrade to zero
// totals so a database outage does not blank the live half of the page.
func (p *StatusProjector) consumptionSummary(ctx context.Context, tenantID string, now time.Time) (day, week, month float64) {
	today := now.Format("2006-01-02")
	weekStart := now.AddDate(0, 0, -7).Format("2006-01-02")
	monthStart := now.AddDate(0, 0, -30).Format("2006-01-02")

	for _, span := range []struct {
		start string
		dest  *float64
	}{
		{today, &day},
		{weekStart, &week},
		{monthStart, &month},
	} {
		total, _, err := p.consumption.SumRange(ctx, tenantID, span.start, today)
		if err != nil {
			p.logger.Warn("Failed to sum consumption range",
				zap.String("tenant_id", tenantID),
				zap.String("start_date", span.start),
				zap.Error(err))
			continue
		}
		*span.dest = round2(total)
	}
	return day, week, month
}

// Fleet lists every tenant with a stored snapshot, ordered by tenant ID,
// one page at a time. A snapshot store outage degrades to an empty page
// instead of an error.
func (p *StatusProjector) Fleet(ctx context.Context, page, size int) ([]*FleetEntry, int, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	now := p.now()

	snaps, err := p.status.ListSnapshots(ctx)
	if err != nil {
		p.logger.Warn("Failed to list snapshots for fleet view", zap.Error(err))
		return []*FleetEntry{}, 0, nil
	}

	ids := make([]string, 0, len(snaps))
	for id := range snaps {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	total := len(ids)
	start := (page - 1) * size
	if start >= total {
		return []*FleetEntry{}, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}

	entries := make([]*FleetEntry, 0, end-start)
	for _, id := range ids[start:end] {
		snap := snaps[id]
		pump := snap.PumpState
		if pump == "" {
			pump = "OFF"
		}
		entries = append(entries, &FleetEntry{
			TenantID:       id,
			Pump:           pump,
			FlowIn:         snap.FlowInLMin,
			BatteryPercent: snap.BatteryPercent,
			Leakage:        snap.LeakageDetected,
			Online:         telemetry.Online(snap, p.window, now),
			LastUpdate:     snap.LastUpdate,
		})
	}
	return entries, total, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
