package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"aquasolar-cloud/internal/service"
)

// StatusHandler the dashboard-facing status and pump-control endpoints.
type StatusHandler struct {
	projector *service.StatusProjector
	pump      *service.PumpController
	logger    *zap.Logger
}

func NewStatusHandler(projector *service.StatusProjector, pump *service.PumpController, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{projector: projector, pump: pump, logger: logger}
}

// GetStatusData returns one tenant's projected status view.
func (h *StatusHandler) GetStatusData(w http.ResponseWriter, r *http.Request) {
	tenantID := r.URL.Query().Get("tenant_id")
	if tenantID == "" {
		writeJSON(w, http.StatusOK, Fail("tenant_id is required"))
		return
	}

	view, err := h.projector.Project(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("Failed to project status",
			zap.String("tenant_id", tenantID),
			zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to get status data"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(view))
}

// GetFleet returns one page of the fleet overview.
func (h *StatusHandler) GetFleet(w http.ResponseWriter, r *http.Request) {
	page := parseInt(r.URL.Query().Get("page"), 1)
	size := parseInt(r.URL.Query().Get("size"), 20)

	entries, total, err := h.projector.Fleet(r.Context(), page, size)
	if err != nil {
		h.logger.Error("Failed to list fleet", zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to list fleet"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"items": entries, "total": total}))
}

type toggleRequest struct {
	TenantID string `json:"tenant_id"`
}

// TogglePump queues the opposite pump state for the unit.
func (h *StatusHandler) TogglePump(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	if req.TenantID == "" {
		writeJSON(w, http.StatusOK, Fail("tenant_id is required"))
		return
	}

	state, err := h.pump.Toggle(r.Context(), req.TenantID)
	if err != nil {
		h.logger.Error("Failed to toggle pump",
			zap.String("tenant_id", req.TenantID),
			zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to toggle pump"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"pump": state, "status": "command_sent"}))
}
