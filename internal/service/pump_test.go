package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aquasolar-cloud/internal/domain"
	"aquasolar-cloud/internal/repository"
)

type pumpFixture struct {
	ctrl     *PumpController
	status   *fakeStatusRepo
	commands *fakeCommandsRepo
	logs     *fakeLogsRepo
}

func newPumpFixture() *pumpFixture {
	f := &pumpFixture{
		status:   newFakeStatusRepo(),
		commands: newFakeCommandsRepo(),
		logs:     &fakeLogsRepo{},
	}
	f.ctrl = NewPumpController(f.status, f.commands, f.logs, zap.NewNop())
	f.ctrl.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	return f
}

func TestToggleFromNeverReportedDefaultsToOn(t *testing.T) {
	f := newPumpFixture()

	state, err := f.ctrl.Toggle(context.Background(), "TEN_A")
	require.NoError(t, err)
	assert.Equal(t, domain.PumpOn, state)

	cmd := f.commands.slots["TEN_A"]
	require.NotNil(t, cmd)
	assert.Equal(t, domain.CommandOn, cmd.Action)
	assert.Equal(t, domain.CommandStatusPending, cmd.Status)

	require.Len(t, f.logs.control, 1)
	assert.Equal(t, "TURN_ON", f.logs.control[0].Action)
	assert.Equal(t, domain.ControlMethodManual, f.logs.control[0].Method)
	assert.Equal(t, "Pump TURN_ON via Manual", f.logs.control[0].Details)
}

func TestToggleFromOnTargetsOff(t *testing.T) {
	f := newPumpFixture()
	f.status.snaps["TEN_A"] = &domain.StatusSnapshot{PumpState: domain.PumpOn}

	state, err := f.ctrl.Toggle(context.Background(), "TEN_A")
	require.NoError(t, err)
	assert.Equal(t, domain.PumpOff, state)
	assert.Equal(t, domain.CommandOff, f.commands.slots["TEN_A"].Action)
	assert.Equal(t, "TURN_OFF", f.logs.control[0].Action)
}

func TestToggleQueueFailureSurfaces(t *testing.T) {
	f := newPumpFixture()
	f.commands.setErr = errors.New("redis down")

	_, err := f.ctrl.Toggle(context.Background(), "TEN_A")
	require.Error(t, err)
	assert.Empty(t, f.logs.control, "no audit entry for a command that was never queued")
}

func TestToggleControlLogFailureTolerated(t *testing.T) {
	f := newPumpFixture()
	f.logs.controlErr = errors.New("pq: connection refused")

	state, err := f.ctrl.Toggle(context.Background(), "TEN_A")
	require.NoError(t, err, "the queued command wins over the lost audit entry")
	assert.Equal(t, domain.PumpOn, state)
	assert.NotNil(t, f.commands.slots["TEN_A"])
}

func TestToggleRequiresTenantID(t *testing.T) {
	f := newPumpFixture()

	_, err := f.ctrl.Toggle(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tenant_id")
}

func TestAcknowledgeClosesCommandWithRemoteLog(t *testing.T) {
	f := newPumpFixture()
	require.NoError(t, f.commands.Set(context.Background(), "TEN_A", domain.CommandOn, time.Now()))

	cmd, err := f.ctrl.Acknowledge(context.Background(), "TEN_A", "")
	require.NoError(t, err)
	assert.Equal(t, domain.CommandStatusExecuted, cmd.Status)

	require.Len(t, f.logs.control, 1)
	assert.Equal(t, domain.CommandOn, f.logs.control[0].Action, "empty action falls back to the stored command")
	assert.Equal(t, domain.ControlMethodRemote, f.logs.control[0].Method)
	assert.Equal(t, "Pump ON via Remote", f.logs.control[0].Details)
}

func TestAcknowledgeKeepsReportedAction(t *testing.T) {
	f := newPumpFixture()
	require.NoError(t, f.commands.Set(context.Background(), "TEN_A", domain.CommandOff, time.Now()))

	_, err := f.ctrl.Acknowledge(context.Background(), "TEN_A", "TURN_OFF")
	require.NoError(t, err)
	assert.Equal(t, "TURN_OFF", f.logs.control[0].Action)
}

func TestAcknowledgeEmptyMailbox(t *testing.T) {
	f := newPumpFixture()

	_, err := f.ctrl.Acknowledge(context.Background(), "TEN_A", "ON")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNoCommand)
	assert.Empty(t, f.logs.control)
}
