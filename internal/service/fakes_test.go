package service

import (
	"context"
	"time"

	"aquasolar-cloud/internal/domain"
	"aquasolar-cloud/internal/repository"
)

type fakeStatusRepo struct {
	snaps   map[string]*domain.StatusSnapshot
	getErr  error
	listErr error
}

func newFakeStatusRepo() *fakeStatusRepo {
	return &fakeStatusRepo{snaps: make(map[string]*domain.StatusSnapshot)}
}

func (f *fakeStatusRepo) GetSnapshot(_ context.Context, tenantID string) (*domain.StatusSnapshot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	snap, ok := f.snaps[tenantID]
	if !ok {
		return nil, nil
	}
	cp := *snap
	return &cp, nil
}

func (f *fakeStatusRepo) SaveSnapshot(_ context.Context, tenantID string, snap *domain.StatusSnapshot) error {
	cp := *snap
	f.snaps[tenantID] = &cp
	return nil
}

func (f *fakeStatusRepo) ListSnapshots(_ context.Context) (map[string]*domain.StatusSnapshot, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.snaps, nil
}

var _ repository.StatusRepository = (*fakeStatusRepo)(nil)

type fakeConsumptionRepo struct {
	rows    []*domain.ConsumptionRecord
	sums    map[string]float64 // keyed by start date
	listErr error
	sumErr  error
}

func (f *fakeConsumptionRepo) Increment(_ context.Context, _, _ string, _ float64, _ int) error {
	return nil
}

func (f *fakeConsumptionRepo) ListRange(_ context.Context, _, _, _ string) ([]*domain.ConsumptionRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func (f *fakeConsumptionRepo) SumRange(_ context.Context, _, startDate, _ string) (float64, int, error) {
	if f.sumErr != nil {
		return 0, 0, f.sumErr
	}
	return f.sums[startDate], 0, nil
}

var _ repository.ConsumptionRepository = (*fakeConsumptionRepo)(nil)

type fakeCommandsRepo struct {
	slots  map[string]*domain.Command
	setErr error
}

func newFakeCommandsRepo() *fakeCommandsRepo {
	return &fakeCommandsRepo{slots: make(map[string]*domain.Command)}
}

func (f *fakeCommandsRepo) Get(_ context.Context, tenantID string) (*domain.Command, error) {
	cmd, ok := f.slots[tenantID]
	if !ok {
		return nil, nil
	}
	cp := *cmd
	return &cp, nil
}

func (f *fakeCommandsRepo) Set(_ context.Context, tenantID, action string, now time.Time) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.slots[tenantID] = &domain.Command{Action: action, Status: domain.CommandStatusPending, Timestamp: now}
	return nil
}

func (f *fakeCommandsRepo) Deliver(_ context.Context, tenantID string) (string, error) {
	cmd, ok := f.slots[tenantID]
	if !ok || cmd.Status != domain.CommandStatusPending {
		return domain.CommandNone, nil
	}
	cmd.Status = domain.CommandStatusDelivered
	return cmd.Action, nil
}

func (f *fakeCommandsRepo) Acknowledge(_ context.Context, tenantID string) (*domain.Command, error) {
	cmd, ok := f.slots[tenantID]
	if !ok {
		return nil, repository.ErrNoCommand
	}
	cmd.Status = domain.CommandStatusExecuted
	cp := *cmd
	return &cp, nil
}

var _ repository.CommandsRepository = (*fakeCommandsRepo)(nil)

type fakeLogsRepo struct {
	sensor  []*domain.SensorLog
	power   []*domain.PowerLog
	control []*domain.ControlLog

	controlErr  error
	lastFilters repository.LogFilters
}

func (f *fakeLogsRepo) InsertSensorLog(_ context.Context, log *domain.SensorLog) error {
	f.sensor = append(f.sensor, log)
	return nil
}

func (f *fakeLogsRepo) InsertPowerLog(_ context.Context, log *domain.PowerLog) error {
	f.power = append(f.power, log)
	return nil
}

func (f *fakeLogsRepo) InsertControlLog(_ context.Context, log *domain.ControlLog) error {
	if f.controlErr != nil {
		return f.controlErr
	}
	f.control = append(f.control, log)
	return nil
}

func (f *fakeLogsRepo) ListSensorLogs(_ context.Context, _ string, filters repository.LogFilters) ([]*domain.SensorLog, error) {
	f.lastFilters = filters
	return f.sensor, nil
}

func (f *fakeLogsRepo) ListPowerLogs(_ context.Context, _ string, filters repository.LogFilters) ([]*domain.PowerLog, error) {
	f.lastFilters = filters
	return f.power, nil
}

func (f *fakeLogsRepo) ListControlLogs(_ context.Context, _ string, filters repository.LogFilters) ([]*domain.ControlLog, error) {
	f.lastFilters = filters
	return f.control, nil
}

var _ repository.LogsRepository = (*fakeLogsRepo)(nil)

type fakeAlertsRepo struct {
	alerts []*domain.AlertLog
}

func (f *fakeAlertsRepo) InsertAlert(_ context.Context, alert *domain.AlertLog) error {
	f.alerts = append(f.alerts, alert)
	return nil
}

func (f *fakeAlertsRepo) ListAlerts(_ context.Context, _ string, _ repository.AlertFilters, _, _ int) ([]*domain.AlertLog, int, error) {
	return f.alerts, len(f.alerts), nil
}

func (f *fakeAlertsRepo) AcknowledgeAlert(_ context.Context, _, _ string) error {
	return nil
}

var _ repository.AlertsRepository = (*fakeAlertsRepo)(nil)
