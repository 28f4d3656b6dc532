package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"aquasolar-cloud/internal/domain"
)

// PostgresAlertsRepository AlertsRepository over the alerts table.
type PostgresAlertsRepository struct {
	db *sql.DB
}

func NewPostgresAlertsRepository(db *sql.DB) *PostgresAlertsRepository {
	return &PostgresAlertsRepository{db: db}
}

var _ AlertsRepository = (*PostgresAlertsRepository)(nil)

func (r *PostgresAlertsRepository) InsertAlert(ctx context.Context, alert *domain.AlertLog) error {
	if alert == nil {
		return fmt.Errorf("alert is required")
	}
	if alert.TenantID == "" {
		return fmt.Errorf("tenant_id is required")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO alerts (alert_id, tenant_id, alert_type, status, details, alert_date)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		alert.AlertID, alert.TenantID, alert.AlertType, alert.Status, alert.Details, alert.AlertDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	return nil
}

func (r *PostgresAlertsRepository) ListAlerts(ctx context.Context, tenantID string, filters AlertFilters, page, size int) ([]*domain.AlertLog, int, error) {
	if tenantID == "" {
		return nil, 0, fmt.Errorf("tenant_id is required")
	}
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 50
	}
	offset := (page - 1) * size

	where := []string{"tenant_id = $1"}
	args := []any{tenantID}
	argIdx := 2

	if filters.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filters.Status)
		argIdx++
	}
	if filters.Type != "" {
		where = append(where, fmt.Sprintf("alert_type = $%d", argIdx))
		args = append(args, filters.Type)
		argIdx++
	}
	if filters.Start != nil {
		where = append(where, fmt.Sprintf("alert_date >= $%d", argIdx))
		args = append(args, *filters.Start)
		argIdx++
	}
	if filters.End != nil {
		where = append(where, fmt.Sprintf("alert_date <= $%d", argIdx))
		args = append(args, *filters.End)
		argIdx++
	}

	whereClause := "WHERE " + strings.Join(where, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM alerts %s`, whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count alerts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT alert_id, tenant_id, alert_type, status, details, alert_date
		FROM alerts
		%s
		ORDER BY alert_date DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, size, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	alerts := []*domain.AlertLog{}
	for rows.Next() {
		var alert domain.AlertLog
		if err := rows.Scan(&alert.AlertID, &alert.TenantID, &alert.AlertType, &alert.Status, &alert.Details, &alert.AlertDate); err != nil {
			return nil, 0, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, &alert)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate alerts: %w", err)
	}

	return alerts, total, nil
}

func (r *PostgresAlertsRepository) AcknowledgeAlert(ctx context.Context, tenantID, alertID string) error {
	if tenantID == "" {
		return fmt.Errorf("tenant_id is required")
	}
	if alertID == "" {
		return fmt.Errorf("alert_id is required")
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE alerts SET status = $3 WHERE tenant_id = $1 AND alert_id = $2`,
		tenantID, alertID, domain.AlertStatusResolved,
	)
	if err != nil {
		return fmt.Errorf("failed to acknowledge alert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("alert not found: alert_id '%s' does not exist", alertID)
	}

	return nil
}
