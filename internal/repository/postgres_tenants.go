package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"aquasolar-cloud/internal/domain"
)

// PostgresTenantsRepository TenantsRepository over the tenants table.
type PostgresTenantsRepository struct {
	db *sql.DB
}

func NewPostgresTenantsRepository(db *sql.DB) *PostgresTenantsRepository {
	return &PostgresTenantsRepository{db: db}
}

var _ TenantsRepository = (*PostgresTenantsRepository)(nil)

func (r *PostgresTenantsRepository) GetTenant(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}

	query := `
		SELECT
			tenant_id,
			tenant_name,
			COALESCE(contact_phone, '') as contact_phone,
			COALESCE(contact_email, '') as contact_email,
			COALESCE(status, 'active') as status
		FROM tenants
		WHERE tenant_id = $1
	`

	var tenant domain.Tenant
	err := r.db.QueryRowContext(ctx, query, tenantID).Scan(
		&tenant.TenantID,
		&tenant.TenantName,
		&tenant.ContactPhone,
		&tenant.ContactEmail,
		&tenant.Status,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("tenant not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return &tenant, nil
}

func (r *PostgresTenantsRepository) ListTenants(ctx context.Context, filter TenantFilters, page, size int) ([]*domain.Tenant, int, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 50
	}
	offset := (page - 1) * size

	where := []string{}
	args := []any{}
	argIdx := 1

	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}

	if filter.Search != "" {
		where = append(where, fmt.Sprintf("tenant_name ILIKE $%d", argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM tenants %s`, whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tenants: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT
			tenant_id,
			tenant_name,
			COALESCE(contact_phone, '') as contact_phone,
			COALESCE(contact_email, '') as contact_email,
			COALESCE(status, 'active') as status
		FROM tenants
		%s
		ORDER BY tenant_name
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, size, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	tenants := []*domain.Tenant{}
	for rows.Next() {
		var tenant domain.Tenant
		if err := rows.Scan(
			&tenant.TenantID,
			&tenant.TenantName,
			&tenant.ContactPhone,
			&tenant.ContactEmail,
			&tenant.Status,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, &tenant)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate tenants: %w", err)
	}

	return tenants, total, nil
}

func (r *PostgresTenantsRepository) CreateTenant(ctx context.Context, tenant *domain.Tenant) (string, error) {
	if tenant == nil {
		return "", fmt.Errorf("tenant is required")
	}
	if tenant.TenantName == "" {
		return "", fmt.Errorf("tenant_name is required")
	}

	tenantID := tenant.TenantID
	if tenantID == "" {
		tenantID = domain.NewRecordID("ACC")
	}

	status := tenant.Status
	if status == "" {
		status = domain.TenantStatusActive
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tenants (tenant_id, tenant_name, contact_phone, contact_email, status)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)`,
		tenantID,
		tenant.TenantName,
		tenant.ContactPhone,
		tenant.ContactEmail,
		status,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create tenant: %w", err)
	}

	return tenantID, nil
}

func (r *PostgresTenantsRepository) UpdateTenant(ctx context.Context, tenantID string, tenant *domain.Tenant) error {
	if tenantID == "" {
		return fmt.Errorf("tenant_id is required")
	}
	if tenant == nil {
		return fmt.Errorf("tenant is required")
	}

	updates := []string{}
	args := []any{tenantID}
	argIdx := 2

	if tenant.TenantName != "" {
		updates = append(updates, fmt.Sprintf("tenant_name = $%d", argIdx))
		args = append(args, tenant.TenantName)
		argIdx++
	}

	if tenant.ContactPhone != "" {
		updates = append(updates, fmt.Sprintf("contact_phone = NULLIF($%d, '')", argIdx))
		args = append(args, tenant.ContactPhone)
		argIdx++
	}

	if tenant.ContactEmail != "" {
		updates = append(updates, fmt.Sprintf("contact_email = NULLIF($%d, '')", argIdx))
		args = append(args, tenant.ContactEmail)
		argIdx++
	}

	if tenant.Status != "" {
		updates = append(updates, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, tenant.Status)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE tenants
		SET %s, updated_at = NOW()
		WHERE tenant_id = $1
	`, strings.Join(updates, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update tenant: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("tenant not found: tenant_id '%s' does not exist", tenantID)
	}

	return nil
}

func (r *PostgresTenantsRepository) DeactivateTenant(ctx context.Context, tenantID string) error {
	if tenantID == "" {
		return fmt.Errorf("tenant_id is required")
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE tenants SET status = $2, updated_at = NOW() WHERE tenant_id = $1`,
		tenantID, domain.TenantStatusInactive,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate tenant: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("tenant not found: tenant_id '%s' does not exist", tenantID)
	}

	return nil
}
