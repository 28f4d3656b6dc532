package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aquasolar-cloud/internal/domain"
	"aquasolar-cloud/internal/repository"
)

func newLogsRepo(t *testing.T) (*repository.PostgresLogsRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewPostgresLogsRepository(db), mock
}

func TestLogs_InsertSensorLog(t *testing.T) {
	repo, mock := newLogsRepo(t)
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO sensor_logs`).
		WithArgs("LOG_AAAA0001", "ACC_11111111", domain.SensorFlowIn, 12.5, domain.UnitLitersPerMin, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.InsertSensorLog(context.Background(), &domain.SensorLog{
		LogID:        "LOG_AAAA0001",
		TenantID:     "ACC_11111111",
		SensorID:     domain.SensorFlowIn,
		ReadingValue: 12.5,
		Unit:         domain.UnitLitersPerMin,
		RecordedAt:   now,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogs_InsertPowerLog(t *testing.T) {
	repo, mock := newLogsRepo(t)
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO power_logs`).
		WithArgs("PWR_AAAA0001", "ACC_11111111", 12.4, 1.8, 76.0, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.InsertPowerLog(context.Background(), &domain.PowerLog{
		PowerID:        "PWR_AAAA0001",
		TenantID:       "ACC_11111111",
		PowerLevelV:    12.4,
		CurrentA:       1.8,
		BatteryPercent: 76,
		RecordedAt:     now,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogs_InsertControlLog(t *testing.T) {
	repo, mock := newLogsRepo(t)
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO control_logs`).
		WithArgs("CTRL_AAAA0001", "ACC_11111111", "TURN_ON", domain.ControlMethodManual, "Pump TURN_ON via Manual", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.InsertControlLog(context.Background(), &domain.ControlLog{
		ControlID:   "CTRL_AAAA0001",
		TenantID:    "ACC_11111111",
		Action:      "TURN_ON",
		Method:      domain.ControlMethodManual,
		Details:     "Pump TURN_ON via Manual",
		ControlTime: now,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogs_InsertRequiresTenantID(t *testing.T) {
	repo, _ := newLogsRepo(t)

	err := repo.InsertSensorLog(context.Background(), &domain.SensorLog{LogID: "LOG_X"})
	require.Error(t, err)
}

func TestLogs_ListSensorLogsRange(t *testing.T) {
	repo, mock := newLogsRepo(t)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"log_id", "tenant_id", "sensor_id", "reading_value", "unit", "recorded_at"}).
		AddRow("LOG_AAAA0002", "ACC_11111111", domain.SensorFlowIn, 13.0, "L/min", end).
		AddRow("LOG_AAAA0001", "ACC_11111111", domain.SensorFlowIn, 12.5, "L/min", start)

	mock.ExpectQuery(`FROM sensor_logs`).
		WithArgs("ACC_11111111", start, end).
		WillReturnRows(rows)

	logs, err := repo.ListSensorLogs(context.Background(), "ACC_11111111", repository.LogFilters{
		Start: &start,
		End:   &end,
	})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "LOG_AAAA0002", logs[0].LogID)
	assert.Equal(t, 13.0, logs[0].ReadingValue)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogs_ListControlLogsNoRange(t *testing.T) {
	repo, mock := newLogsRepo(t)
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"control_id", "tenant_id", "action", "method", "details", "control_time"}).
		AddRow("CTRL_AAAA0001", "ACC_11111111", "ON", domain.ControlMethodRemote, "Pump ON via Remote", now)

	mock.ExpectQuery(`FROM control_logs`).
		WithArgs("ACC_11111111").
		WillReturnRows(rows)

	logs, err := repo.ListControlLogs(context.Background(), "ACC_11111111", repository.LogFilters{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.ControlMethodRemote, logs[0].Method)
	require.NoError(t, mock.ExpectationsWereMet())
}
