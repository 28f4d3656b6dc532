package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"aquasolar-cloud/internal/config"
	"aquasolar-cloud/internal/domain"
	"aquasolar-cloud/internal/repository"
)

// Notifier pushes alert notifications to the operator channel. A nil
// Notifier disables notifications without touching the pipeline.
type Notifier interface {
	SendAlert(ctx context.Context, tenantID, alertType, details string) error
}

// PushResult what the field unit gets back for one processed push.
type PushResult struct {
	// Command is the pending action piggybacked on the push response,
	// domain.CommandNone when the mailbox had nothing to deliver.
	Command string
}

// Processor runs one telemetry push through the write-reduction pipeline:
// snapshot overwrite first (always), then the throttled sensor and power
// logs, edge-triggered alerts and the gated consumption counters, and
// finally the piggybacked command delivery.
//
// The snapshot and the mailbox are the unit's contract; failures there fail
// the push. Every other writer is best effort: its error is logged and the
// remaining writers still run.
type Processor struct {
	cfg         config.TelemetryConfig
	gate        *ThrottleGate
	edges       *EdgeDetector
	status      repository.StatusRepository
	logs        repository.LogsRepository
	alerts      repository.AlertsRepository
	consumption repository.ConsumptionRepository
	commands    repository.CommandsRepository
	notifier    Notifier
	logger      *zap.Logger

	now func() time.Time
}

func NewProcessor(
	cfg config.TelemetryConfig,
	state *StateStore,
	status repository.StatusRepository,
	logs repository.LogsRepository,
	alerts repository.AlertsRepository,
	consumption repository.ConsumptionRepository,
	commands repository.CommandsRepository,
	notifier Notifier,
	logger *zap.Logger,
) *Processor {
	return &Processor{
		cfg:         cfg,
		gate:        NewThrottleGate(state),
		edges:       NewEdgeDetector(state, cfg.BatteryFloor),
		status:      status,
		logs:        logs,
		alerts:      alerts,
		consumption: consumption,
		commands:    commands,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// Process handles one push from a channel that can answer, delivering any
// pending command on top of the writes. The returned error means the push
// was not accepted and the unit should retry; partial writer failures do
// not surface here.
func (p *Processor) Process(ctx context.Context, push *domain.TelemetryPush) (*PushResult, error) {
	if err := p.Ingest(ctx, push); err != nil {
		return nil, err
	}

	action, err := p.commands.Deliver(ctx, push.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to deliver command: %w", err)
	}
	return &PushResult{Command: action}, nil
}

// Ingest runs the write half of the pipeline without touching the command
// mailbox. One-way transports use this directly; a delivery on their
// behalf would hand the command to nobody.
func (p *Processor) Ingest(ctx context.Context, push *domain.TelemetryPush) error {
	if push == nil || push.TenantID == "" {
		return fmt.Errorf("tenant_id is required")
	}
	now := p.now()

	snap, err := p.status.GetSnapshot(ctx, push.TenantID)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	if snap == nil {
		snap = &domain.StatusSnapshot{}
	}
	snap.Apply(push, now)
	if err := p.status.SaveSnapshot(ctx, push.TenantID, snap); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	p.writeSensorLog(ctx, push, now)
	p.writePowerLog(ctx, push, now)
	p.checkAlerts(ctx, push, now)
	p.updateConsumption(ctx, push, now)
	return nil
}

func (p *Processor) writeSensorLog(ctx context.Context, push *domain.TelemetryPush, now time.Time) {
	if push.FlowInLMin == nil {
		return
	}
	value := *push.FlowInLMin
	if !p.gate.ShouldLog(push.TenantID, streamSensor, metricFlowIn, value,
		p.cfg.SensorLogInterval, p.cfg.FlowThreshold, now) {
		return
	}

	log := &domain.SensorLog{
		LogID:        domain.NewRecordID("LOG"),
		TenantID:     push.TenantID,
		SensorID:     domain.SensorFlowIn,
		ReadingValue: value,
		Unit:         domain.UnitLitersPerMin,
		RecordedAt:   now,
	}
	if err := p.logs.InsertSensorLog(ctx, log); err != nil {
		p.logger.Error("Failed to write sensor log",
			zap.String("tenant_id", push.TenantID),
			zap.Error(err))
		return
	}
	p.gate.MarkLogged(push.TenantID, streamSensor, metricFlowIn, value, now)
}

func (p *Processor) writePowerLog(ctx context.Context, push *domain.TelemetryPush, now time.Time) {
	// The power stream needs the full triple; a push carrying only one of
	// them updates the snapshot but never the log.
	if push.BatteryVoltageV == nil || push.CurrentA == nil || push.BatteryPercent == nil {
		return
	}
	percent := *push.BatteryPercent
	if !p.gate.ShouldLog(push.TenantID, streamPower, metricBattery, percent,
		p.cfg.PowerLogInterval, p.cfg.BatteryThreshold, now) {
		return
	}

	log := &domain.PowerLog{
		PowerID:        domain.NewRecordID("PWR"),
		TenantID:       push.TenantID,
		PowerLevelV:    *push.BatteryVoltageV,
		CurrentA:       *push.CurrentA,
		BatteryPercent: percent,
		RecordedAt:     now,
	}
	if err := p.logs.InsertPowerLog(ctx, log); err != nil {
		p.logger.Error("Failed to write power log",
			zap.String("tenant_id", push.TenantID),
			zap.Error(err))
		return
	}
	p.gate.MarkLogged(push.TenantID, streamPower, metricBattery, percent, now)
}

func (p *Processor) checkAlerts(ctx context.Context, push *domain.TelemetryPush, now time.Time) {
	if push.LeakageDetected != nil {
		if p.edges.LeakageEdge(push.TenantID, *push.LeakageDetected) {
			p.raiseAlert(ctx, push.TenantID, domain.AlertTypeLeakage,
				"Flow differential exceeded threshold", now)
		}
	}
	if push.BatteryPercent != nil {
		percent := *push.BatteryPercent
		if p.edges.BatteryEdge(push.TenantID, percent) {
			p.raiseAlert(ctx, push.TenantID, domain.AlertTypeLowBattery,
				fmt.Sprintf("Battery at %g%%", percent), now)
		}
	}
}

func (p *Processor) raiseAlert(ctx context.Context, tenantID, alertType, details string, now time.Time) {
	alert := &domain.AlertLog{
		AlertID:   domain.NewRecordID("ALERT"),
		TenantID:  tenantID,
		AlertType: alertType,
		Status:    domain.AlertStatusActive,
		Details:   details,
		AlertDate: now,
	}
	if err := p.alerts.InsertAlert(ctx, alert); err != nil {
		p.logger.Error("Failed to write alert",
			zap.String("tenant_id", tenantID),
			zap.String("alert_type", alertType),
			zap.Error(err))
		return
	}
	p.logger.Warn("Alert raised",
		zap.String("tenant_id", tenantID),
		zap.String("alert_type", alertType),
		zap.String("details", details))

	if p.notifier == nil {
		return
	}
	if err := p.notifier.SendAlert(ctx, tenantID, alertType, details); err != nil {
		p.logger.Warn("Failed to send alert notification",
			zap.String("tenant_id", tenantID),
			zap.String("alert_type", alertType),
			zap.Error(err))
	}
}

func (p *Processor) updateConsumption(ctx context.Context, push *domain.TelemetryPush, now time.Time) {
	if push.VolumeInL == nil {
		return
	}
	if !p.gate.IntervalElapsed(push.TenantID, streamConsumption, p.cfg.ConsumptionInterval, now) {
		return
	}

	date := now.Format("2006-01-02")
	if err := p.consumption.Increment(ctx, push.TenantID, date, *push.VolumeInL, 1); err != nil {
		p.logger.Error("Failed to update consumption",
			zap.String("tenant_id", push.TenantID),
			zap.String("consumption_date", date),
			zap.Error(err))
		return
	}
	p.gate.MarkInterval(push.TenantID, streamConsumption, now)
}
