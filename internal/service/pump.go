package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"aquasolar-cloud/internal/domain"
	"aquasolar-cloud/internal/repository"
)

// PumpController owns the pump command lifecycle on the server side:
// dashboard toggles queue a command, unit acknowledgements close it, and
// both leave a control log entry.
type PumpController struct {
	status   repository.StatusRepository
	commands repository.CommandsRepository
	logs     repository.LogsRepository
	logger   *zap.Logger

	now func() time.Time
}

func NewPumpController(
	status repository.StatusRepository,
	commands repository.CommandsRepository,
	logs repository.LogsRepository,
	logger *zap.Logger,
) *PumpController {
	return &PumpController{
		status:   status,
		commands: commands,
		logs:     logs,
		logger:   logger,
		now:      time.Now,
	}
}

// Toggle reads the last reported pump state, targets the opposite, and
// queues it for the unit. A tenant that has never reported toggles from
// OFF. The returned state is the queued target, not a confirmation that
// the unit switched.
func (c *PumpController) Toggle(ctx context.Context, tenantID string) (string, error) {
	if tenantID == "" {
		return "", fmt.Errorf("tenant_id is required")
	}

	snap, err := c.status.GetSnapshot(ctx, tenantID)
	if err != nil {
		return "", fmt.Errorf("failed to load snapshot: %w", err)
	}
	target := domain.PumpOn
	if snap != nil && snap.PumpState == domain.PumpOn {
		target = domain.PumpOff
	}

	now := c.now()
	if err := c.commands.Set(ctx, tenantID, target, now); err != nil {
		return "", fmt.Errorf("failed to queue command: %w", err)
	}
	c.writeControlLog(ctx, tenantID, "TURN_"+target, domain.ControlMethodManual, now)
	return target, nil
}

// Acknowledge marks the outstanding command executed and records the
// remote action. An empty action falls back to the stored command's.
func (c *PumpController) Acknowledge(ctx context.Context, tenantID, action string) (*domain.Command, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}

	cmd, err := c.commands.Acknowledge(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if action == "" {
		action = cmd.Action
	}
	c.writeControlLog(ctx, tenantID, action, domain.ControlMethodRemote, c.now())
	return cmd, nil
}

// writeControlLog appends the audit entry. The toggle or acknowledgement
// already succeeded at this point, so a failed append is logged, not
// returned.
func (c *PumpController) writeControlLog(ctx context.Context, tenantID, action, method string, now time.Time) {
	entry := &domain.ControlLog{
		ControlID:   domain.NewRecordID("CTRL"),
		TenantID:    tenantID,
		Action:      action,
		Method:      method,
		Details:     fmt.Sprintf("Pump %s via %s", action, method),
		ControlTime: now,
	}
	if err := c.logs.InsertControlLog(ctx, entry); err != nil {
		c.logger.Error("Failed to write control log",
			zap.String("tenant_id", tenantID),
			zap.String("action", action),
			zap.Error(err))
	}
}
