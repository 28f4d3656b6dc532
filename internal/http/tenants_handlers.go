package httpapi

import (
	"database/sql"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"aquasolar-cloud/internal/domain"
	"aquasolar-cloud/internal/repository"
)

// TenantsHandler admin CRUD over the tenant registry.
type TenantsHandler struct {
	repo   repository.TenantsRepository
	logger *zap.Logger
}

func NewTenantsHandler(repo repository.TenantsRepository, logger *zap.Logger) *TenantsHandler {
	return &TenantsHandler{repo: repo, logger: logger}
}

// tenantPayload request body for create/update.
type tenantPayload struct {
	TenantID     string `json:"tenant_id"`
	TenantName   string `json:"tenant_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`
	Status       string `json:"status"`
}

// CreateTenant POST /api/tenants/create
func (h *TenantsHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var payload tenantPayload
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	if payload.TenantName == "" {
		writeJSON(w, http.StatusOK, Fail("tenant_name is required"))
		return
	}

	tenant := &domain.Tenant{
		TenantID:     payload.TenantID,
		TenantName:   payload.TenantName,
		ContactPhone: payload.ContactPhone,
		ContactEmail: payload.ContactEmail,
		Status:       payload.Status,
	}

	tenantID, err := h.repo.CreateTenant(r.Context(), tenant)
	if err != nil {
		h.logger.Error("Failed to create tenant", zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to create tenant"))
		return
	}

	created, err := h.repo.GetTenant(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("Failed to load created tenant", zap.String("tenant_id", tenantID), zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to load created tenant"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(created.ToJSON()))
}

// ListTenants GET /api/tenants/list?status=&search=&page=&size=
func (h *TenantsHandler) ListTenants(w http.ResponseWriter, r *http.Request) {
	filter := repository.TenantFilters{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}
	page := parseInt(r.URL.Query().Get("page"), 1)
	size := parseInt(r.URL.Query().Get("size"), 50)

	items, total, err := h.repo.ListTenants(r.Context(), filter, page, size)
	if err != nil {
		h.logger.Error("Failed to list tenants", zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to list tenants"))
		return
	}

	out := make([]any, 0, len(items))
	for _, t := range items {
		out = append(out, t.ToJSON())
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"items": out, "total": total}))
}

// GetTenant GET /api/tenants/get?tenant_id=
func (h *TenantsHandler) GetTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := r.URL.Query().Get("tenant_id")
	if tenantID == "" {
		writeJSON(w, http.StatusOK, Fail("tenant_id is required"))
		return
	}

	tenant, err := h.repo.GetTenant(r.Context(), tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusOK, Fail("tenant not found"))
			return
		}
		h.logger.Error("Failed to get tenant", zap.String("tenant_id", tenantID), zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to get tenant"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(tenant.ToJSON()))
}

// UpdateTenant PUT /api/tenants/update
func (h *TenantsHandler) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	var payload tenantPayload
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	if payload.TenantID == "" {
		writeJSON(w, http.StatusOK, Fail("tenant_id is required"))
		return
	}

	tenant := &domain.Tenant{
		TenantName:   payload.TenantName,
		ContactPhone: payload.ContactPhone,
		ContactEmail: payload.ContactEmail,
		Status:       payload.Status,
	}

	if err := h.repo.UpdateTenant(r.Context(), payload.TenantID, tenant); err != nil {
		h.logger.Error("Failed to update tenant", zap.String("tenant_id", payload.TenantID), zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to update tenant"))
		return
	}

	updated, err := h.repo.GetTenant(r.Context(), payload.TenantID)
	if err != nil {
		h.logger.Error("Failed to load updated tenant", zap.String("tenant_id", payload.TenantID), zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to load updated tenant"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(updated.ToJSON()))
}

// DeactivateTenant DELETE /api/tenants/delete?tenant_id=
//
// Soft delete only. Telemetry history for the unit stays queryable.
func (h *TenantsHandler) DeactivateTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := r.URL.Query().Get("tenant_id")
	if tenantID == "" {
		writeJSON(w, http.StatusOK, Fail("tenant_id is required"))
		return
	}

	if err := h.repo.DeactivateTenant(r.Context(), tenantID); err != nil {
		h.logger.Error("Failed to deactivate tenant", zap.String("tenant_id", tenantID), zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to deactivate tenant"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{"success": true}))
}
