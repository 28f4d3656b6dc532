package telemetry

import (
	"context"
	"time"

	"aquasolar-cloud/internal/domain"
	"aquasolar-cloud/internal/repository"
)

// In-memory repositories recording what the pipeline wrote. Error fields
// make a single writer fail while the rest keep working.

type fakeStatusRepo struct {
	snaps   map[string]*domain.StatusSnapshot
	getErr  error
	saveErr error
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
	if f.saveErr != nil {
		return f.saveErr
	}
	cp := *snap
	f.snaps[tenantID] = &cp
	return nil
}

func (f *fakeStatusRepo) ListSnapshots(_ context.Context) (map[string]*domain.StatusSnapshot, error) {
	return f.snaps, nil
}

var _ repository.StatusRepository = (*fakeStatusRepo)(nil)

type fakeLogsRepo struct {
	sensor  []*domain.SensorLog
	power   []*domain.PowerLog
	control []*domain.ControlLog

	sensorErr      error
	sensorAttempts int
}

func (f *fakeLogsRepo) InsertSensorLog(_ context.Context, log *domain.SensorLog) error {
	f.sensorAttempts++
	if f.sensorErr != nil {
		return f.sensorErr
	}
	f.sensor = append(f.sensor, log)
	return nil
}

func (f *fakeLogsRepo) InsertPowerLog(_ context.Context, log *domain.PowerLog) error {
	f.power = append(f.power, log)
	return nil
}

func (f *fakeLogsRepo) InsertControlLog(_ context.Context, log *domain.ControlLog) error {
	f.control = append(f.control, log)
	return nil
}

func (f *fakeLogsRepo) ListSensorLogs(_ context.Context, _ string, _ repository.LogFilters) ([]*domain.SensorLog, error) {
	return f.sensor, nil
}

func (f *fakeLogsRepo) ListPowerLogs(_ context.Context, _ string, _ repository.LogFilters) ([]*domain.PowerLog, error) {
	return f.power, nil
}

func (f *fakeLogsRepo) ListControlLogs(_ context.Context, _ string, _ repository.LogFilters) ([]*domain.ControlLog, error) {
	return f.control, nil
}

var _ repository.LogsRepository = (*fakeLogsRepo)(nil)

type fakeAlertsRepo struct {
	alerts    []*domain.AlertLog
	insertErr error
}

func (f *fakeAlertsRepo) InsertAlert(_ context.Context, alert *domain.AlertLog) error {
	if f.insertErr != nil {
		return f.insertErr
	}
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

type consumptionInc struct {
	tenantID string
	date     string
	volume   float64
	cycles   int
}

type fakeConsumptionRepo struct {
	incs   []consumptionInc
	incErr error
}

func (f *fakeConsumptionRepo) Increment(_ context.Context, tenantID, date string, volume float64, cycles int) error {
	if f.incErr != nil {
		return f.incErr
	}
	f.incs = append(f.incs, consumptionInc{tenantID: tenantID, date: date, volume: volume, cycles: cycles})
	return nil
}

func (f *fakeConsumptionRepo) ListRange(_ context.Context, _, _, _ string) ([]*domain.ConsumptionRecord, error) {
	return nil, nil
}

func (f *fakeConsumptionRepo) SumRange(_ context.Context, _, _, _ string) (float64, int, error) {
	return 0, 0, nil
}

var _ repository.ConsumptionRepository = (*fakeConsumptionRepo)(nil)

type fakeCommandsRepo struct {
	slots      map[string]*domain.Command
	deliverErr error
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
	f.slots[tenantID] = &domain.Command{Action: action, Status: domain.CommandStatusPending, Timestamp: now}
	return nil
}

func (f *fakeCommandsRepo) Deliver(_ context.Context, tenantID string) (string, error) {
	if f.deliverErr != nil {
		return "", f.deliverErr
	}
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

type notifiedAlert struct {
	tenantID  string
	alertType string
	details   string
}

type fakeNotifier struct {
	sent    []notifiedAlert
	sendErr error
}

func (f *fakeNotifier) SendAlert(_ context.Context, tenantID, alertType, details string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, notifiedAlert{tenantID: tenantID, alertType: alertType, details: details})
	return nil
}

var _ Notifier = (*fakeNotifier)(nil)
