package httpapi

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"aquasolar-cloud/internal/domain"
	"aquasolar-cloud/internal/repository"
	"aquasolar-cloud/internal/store"
)

// fakeKV in-memory store.KV. The snapshot and mailbox repos run unchanged
// on top of it.
type fakeKV struct {
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeKV) ScanKeys(ctx context.Context, pattern string) ([]string, error) {
	prefix := strings.TrimSuffix(pattern, "*")
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

var _ store.KV = (*fakeKV)(nil)

type fakeLogsRepo struct {
	sensor  []*domain.SensorLog
	power   []*domain.PowerLog
	control []*domain.ControlLog
}

func (f *fakeLogsRepo) InsertSensorLog(ctx context.Context, log *domain.SensorLog) error {
	f.sensor = append(f.sensor, log)
	return nil
}

func (f *fakeLogsRepo) InsertPowerLog(ctx context.Context, log *domain.PowerLog) error {
	f.power = append(f.power, log)
	return nil
}

func (f *fakeLogsRepo) InsertControlLog(ctx context.Context, log *domain.ControlLog) error {
	f.control = append(f.control, log)
	return nil
}

func (f *fakeLogsRepo) ListSensorLogs(ctx context.Context, tenantID string, filters repository.LogFilters) ([]*domain.SensorLog, error) {
	return f.sensor, nil
}

func (f *fakeLogsRepo) ListPowerLogs(ctx context.Context, tenantID string, filters repository.LogFilters) ([]*domain.PowerLog, error) {
	return f.power, nil
}

func (f *fakeLogsRepo) ListControlLogs(ctx context.Context, tenantID string, filters repository.LogFilters) ([]*domain.ControlLog, error) {
	return f.control, nil
}

var _ repository.LogsRepository = (*fakeLogsRepo)(nil)

type fakeAlertsRepo struct {
	alerts  []*domain.AlertLog
	listErr error
}

func (f *fakeAlertsRepo) InsertAlert(ctx context.Context, alert *domain.AlertLog) error {
	f.alerts = append(f.alerts, alert)
	return nil
}

func (f *fakeAlertsRepo) ListAlerts(ctx context.Context, tenantID string, filters repository.AlertFilters, page, size int) ([]*domain.AlertLog, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.alerts, len(f.alerts), nil
}

func (f *fakeAlertsRepo) AcknowledgeAlert(ctx context.Context, tenantID, alertID string) error {
	for _, a := range f.alerts {
		if a.AlertID == alertID && a.TenantID == tenantID {
			a.Status = domain.AlertStatusResolved
			return nil
		}
	}
	return fmt.Errorf("alert not found")
}

var _ repository.AlertsRepository = (*fakeAlertsRepo)(nil)

type fakeConsumptionRepo struct {
	rows       []*domain.ConsumptionRecord
	increments int
}

func (f *fakeConsumptionRepo) Increment(ctx context.Context, tenantID, date string, volume float64, cycles int) error {
	f.increments++
	return nil
}

func (f *fakeConsumptionRepo) ListRange(ctx context.Context, tenantID, startDate, endDate string) ([]*domain.ConsumptionRecord, error) {
	return f.rows, nil
}

func (f *fakeConsumptionRepo) SumRange(ctx context.Context, tenantID, startDate, endDate string) (float64, int, error) {
	var volume float64
	var cycles int
	for _, row := range f.rows {
		if row.ConsumptionDate >= startDate && row.ConsumptionDate <= endDate {
			volume += row.ConsumptionTotal
			cycles += row.PumpCycles
		}
	}
	return volume, cycles, nil
}

var _ repository.ConsumptionRepository = (*fakeConsumptionRepo)(nil)

type fakeTenantsRepo struct {
	tenants map[string]*domain.Tenant
}

func newFakeTenantsRepo() *fakeTenantsRepo {
	return &fakeTenantsRepo{tenants: map[string]*domain.Tenant{}}
}

func (f *fakeTenantsRepo) GetTenant(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	t, ok := f.tenants[tenantID]
	if !ok {
		return nil, fmt.Errorf("tenant not found: %w", sql.ErrNoRows)
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTenantsRepo) ListTenants(ctx context.Context, filter repository.TenantFilters, page, size int) ([]*domain.Tenant, int, error) {
	ids := make([]string, 0, len(f.tenants))
	for id := range f.tenants {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	matched := []*domain.Tenant{}
	for _, id := range ids {
		t := f.tenants[id]
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(t.TenantName), strings.ToLower(filter.Search)) {
			continue
		}
		copied := *t
		matched = append(matched, &copied)
	}
	return matched, len(matched), nil
}

func (f *fakeTenantsRepo) CreateTenant(ctx context.Context, tenant *domain.Tenant) (string, error) {
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
	f.tenants[tenantID] = &domain.Tenant{
		TenantID:     tenantID,
		TenantName:   tenant.TenantName,
		ContactPhone: tenant.ContactPhone,
		ContactEmail: tenant.ContactEmail,
		Status:       status,
	}
	return tenantID, nil
}

func (f *fakeTenantsRepo) UpdateTenant(ctx context.Context, tenantID string, tenant *domain.Tenant) error {
	t, ok := f.tenants[tenantID]
	if !ok {
		return fmt.Errorf("tenant not found: tenant_id '%s' does not exist", tenantID)
	}
	if tenant.TenantName != "" {
		t.TenantName = tenant.TenantName
	}
	if tenant.ContactPhone != "" {
		t.ContactPhone = tenant.ContactPhone
	}
	if tenant.ContactEmail != "" {
		t.ContactEmail = tenant.ContactEmail
	}
	if tenant.Status != "" {
		t.Status = tenant.Status
	}
	return nil
}

func (f *fakeTenantsRepo) DeactivateTenant(ctx context.Context, tenantID string) error {
	t, ok := f.tenants[tenantID]
	if !ok {
		return fmt.Errorf("tenant not found: tenant_id '%s' does not exist", tenantID)
	}
	t.Status = domain.TenantStatusInactive
	return nil
}

var _ repository.TenantsRepository = (*fakeTenantsRepo)(nil)
