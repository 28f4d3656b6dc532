package repository

import (
	"context"

	"aquasolar-cloud/internal/domain"
)

// TenantsRepository provisioning registry for field units and their owners.
// Data access only; no credential handling lives here.
type TenantsRepository interface {
	// GetTenant fetches one tenant by tenant_id.
	GetTenant(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// ListTenants returns a page of tenants plus the total count.
	// Filters: status (active/inactive), name search (fuzzy).
	ListTenants(ctx context.Context, filter TenantFilters, page, size int) ([]*domain.Tenant, int, error)

	// CreateTenant inserts a new tenant and returns its ID. An empty
	// TenantID is filled with a generated "ACC_" ID.
	CreateTenant(ctx context.Context, tenant *domain.Tenant) (string, error)

	// UpdateTenant applies the non-empty fields of tenant.
	UpdateTenant(ctx context.Context, tenantID string, tenant *domain.Tenant) error

	// DeactivateTenant soft-deletes by flipping status to inactive.
	// Log streams and consumption history stay in place.
	DeactivateTenant(ctx context.Context, tenantID string) error
}

// TenantFilters list filters for ListTenants.
type TenantFilters struct {
	Status string // optional, active/inactive
	Search string // optional, fuzzy match on tenant_name
}
