package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"aquasolar-cloud/internal/domain"
)

// PostgresLogsRepository LogsRepository over sensor_logs, power_logs and
// control_logs.
type PostgresLogsRepository struct {
	db *sql.DB
}

func NewPostgresLogsRepository(db *sql.DB) *PostgresLogsRepository {
	return &PostgresLogsRepository{db: db}
}

var _ LogsRepository = (*PostgresLogsRepository)(nil)

func (r *PostgresLogsRepository) InsertSensorLog(ctx context.Context, log *domain.SensorLog) error {
	if log == nil {
		return fmt.Errorf("sensor log is required")
	}
	if log.TenantID == "" {
		return fmt.Errorf("tenant_id is required")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sensor_logs (log_id, tenant_id, sensor_id, reading_value, unit, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		log.LogID, log.TenantID, log.SensorID, log.ReadingValue, log.Unit, log.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sensor log: %w", err)
	}
	return nil
}

func (r *PostgresLogsRepository) InsertPowerLog(ctx context.Context, log *domain.PowerLog) error {
	if log == nil {
		return fmt.Errorf("power log is required")
	}
	if log.TenantID == "" {
		return fmt.Errorf("tenant_id is required")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO power_logs (power_id, tenant_id, power_level_v, current_a, battery_percent, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		log.PowerID, log.TenantID, log.PowerLevelV, log.CurrentA, log.BatteryPercent, log.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert power log: %w", err)
	}
	return nil
}

func (r *PostgresLogsRepository) InsertControlLog(ctx context.Context, log *domain.ControlLog) error {
	if log == nil {
		return fmt.Errorf("control log is required")
	}
	if log.TenantID == "" {
		return fmt.Errorf("tenant_id is required")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO control_logs (control_id, tenant_id, action, method, details, control_time)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		log.ControlID, log.TenantID, log.Action, log.Method, log.Details, log.ControlTime,
	)
	if err != nil {
		return fmt.Errorf("failed to insert control log: %w", err)
	}
	return nil
}

func (r *PostgresLogsRepository) ListSensorLogs(ctx context.Context, tenantID string, filters LogFilters) ([]*domain.SensorLog, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}

	where, args := buildTimeRange("recorded_at", tenantID, filters)
	query := fmt.Sprintf(`
		SELECT log_id, tenant_id, sensor_id, reading_value, unit, recorded_at
		FROM sensor_logs
		%s
		ORDER BY recorded_at DESC
		LIMIT %d
	`, where, filters.tail())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sensor logs: %w", err)
	}
	defer rows.Close()

	logs := []*domain.SensorLog{}
	for rows.Next() {
		var log domain.SensorLog
		if err := rows.Scan(&log.LogID, &log.TenantID, &log.SensorID, &log.ReadingValue, &log.Unit, &log.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sensor log: %w", err)
		}
		logs = append(logs, &log)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sensor logs: %w", err)
	}
	return logs, nil
}

func (r *PostgresLogsRepository) ListPowerLogs(ctx context.Context, tenantID string, filters LogFilters) ([]*domain.PowerLog, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}

	where, args := buildTimeRange("recorded_at", tenantID, filters)
	query := fmt.Sprintf(`
		SELECT power_id, tenant_id, power_level_v, current_a, battery_percent, recorded_at
		FROM power_logs
		%s
		ORDER BY recorded_at DESC
		LIMIT %d
	`, where, filters.tail())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list power logs: %w", err)
	}
	defer rows.Close()

	logs := []*domain.PowerLog{}
	for rows.Next() {
		var log domain.PowerLog
		if err := rows.Scan(&log.PowerID, &log.TenantID, &log.PowerLevelV, &log.CurrentA, &log.BatteryPercent, &log.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan power log: %w", err)
		}
		logs = append(logs, &log)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate power logs: %w", err)
	}
	return logs, nil
}

func (r *PostgresLogsRepository) ListControlLogs(ctx context.Context, tenantID string, filters LogFilters) ([]*domain.ControlLog, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}

	where, args := buildTimeRange("control_time", tenantID, filters)
	query := fmt.Sprintf(`
		SELECT control_id, tenant_id, action, method, details, control_time
		FROM control_logs
		%s
		ORDER BY control_time DESC
		LIMIT %d
	`, where, filters.tail())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list control logs: %w", err)
	}
	defer rows.Close()

	logs := []*domain.ControlLog{}
	for rows.Next() {
		var log domain.ControlLog
		if err := rows.Scan(&log.ControlID, &log.TenantID, &log.Action, &log.Method, &log.Details, &log.ControlTime); err != nil {
			return nil, fmt.Errorf("failed to scan control log: %w", err)
		}
		logs = append(logs, &log)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate control logs: %w", err)
	}
	return logs, nil
}

// buildTimeRange builds the WHERE clause shared by the three streams:
// tenant guard plus an optional closed [Start, End] range on timeCol.
func buildTimeRange(timeCol, tenantID string, filters LogFilters) (string, []any) {
	where := []string{"tenant_id = $1"}
	args := []any{tenantID}
	argIdx := 2

	if filters.Start != nil {
		where = append(where, fmt.Sprintf("%s >= $%d", timeCol, argIdx))
		args = append(args, *filters.Start)
		argIdx++
	}
	if filters.End != nil {
		where = append(where, fmt.Sprintf("%s <= $%d", timeCol, argIdx))
		args = append(args, *filters.End)
		argIdx++
	}

	return "WHERE " + strings.Join(where, " AND "), args
}
