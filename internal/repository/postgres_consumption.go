package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"aquasolar-cloud/internal/domain"
)

// PostgresConsumptionRepository ConsumptionRepository over the consumption
// table. The (tenant_id, consumption_date) composite key is what makes the
// ON CONFLICT upsert work.
type PostgresConsumptionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresConsumptionRepository(db *sql.DB, logger *zap.Logger) *PostgresConsumptionRepository {
	return &PostgresConsumptionRepository{db: db, logger: logger}
}

var _ ConsumptionRepository = (*PostgresConsumptionRepository)(nil)

func (r *PostgresConsumptionRepository) Increment(ctx context.Context, tenantID, date string, volume float64, cycles int) error {
	if tenantID == "" {
		return fmt.Errorf("tenant_id is required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid consumption date %q: %w", date, err)
	}

	// The increment happens inside the store. cons_id is only taken from
	// the first insert of the day; later conflicts keep the original.
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO consumption (cons_id, tenant_id, consumption_date, consumption_total, pump_cycles, updated_at)
		 VALUES ($1, $2, $3::date, $4, $5, NOW())
		 ON CONFLICT (tenant_id, consumption_date)
		 DO UPDATE SET
			consumption_total = consumption.consumption_total + EXCLUDED.consumption_total,
			pump_cycles = consumption.pump_cycles + EXCLUDED.pump_cycles,
			updated_at = NOW()`,
		domain.NewRecordID("CONS"), tenantID, date, volume, cycles,
	)
	if err != nil {
		return fmt.Errorf("failed to increment consumption: %w", err)
	}
	return nil
}

func (r *PostgresConsumptionRepository) ListRange(ctx context.Context, tenantID, startDate, endDate string) ([]*domain.ConsumptionRecord, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT cons_id, tenant_id, consumption_date::text, consumption_total, pump_cycles
		 FROM consumption
		 WHERE tenant_id = $1
		   AND consumption_date >= $2::date
		   AND consumption_date <= $3::date
		 ORDER BY consumption_date`,
		tenantID, startDate, endDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query consumption range: %w", err)
	}
	defer rows.Close()

	records := []*domain.ConsumptionRecord{}
	for rows.Next() {
		var rec domain.ConsumptionRecord
		if err := rows.Scan(&rec.ConsID, &rec.TenantID, &rec.ConsumptionDate, &rec.ConsumptionTotal, &rec.PumpCycles); err != nil {
			// One bad row must not sink the whole summary.
			r.logger.Warn("Skipping malformed consumption row",
				zap.String("tenant_id", tenantID),
				zap.Error(err),
			)
			continue
		}
		if _, err := time.Parse("2006-01-02", rec.ConsumptionDate); err != nil {
			r.logger.Warn("Skipping consumption row with bad date",
				zap.String("tenant_id", tenantID),
				zap.String("consumption_date", rec.ConsumptionDate),
			)
			continue
		}
		records = append(records, &rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate consumption rows: %w", err)
	}

	return records, nil
}

func (r *PostgresConsumptionRepository) SumRange(ctx context.Context, tenantID, startDate, endDate string) (float64, int, error) {
	records, err := r.ListRange(ctx, tenantID, startDate, endDate)
	if err != nil {
		return 0, 0, err
	}

	var volume float64
	var cycles int
	for _, rec := range records {
		volume += rec.ConsumptionTotal
		cycles += rec.PumpCycles
	}
	return volume, cycles, nil
}
