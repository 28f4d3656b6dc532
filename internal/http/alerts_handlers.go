package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"aquasolar-cloud/internal/repository"
)

// AlertsHandler dashboard view over the alert stream.
type AlertsHandler struct {
	repo   repository.AlertsRepository
	logger *zap.Logger
}

func NewAlertsHandler(repo repository.AlertsRepository, logger *zap.Logger) *AlertsHandler {
	return &AlertsHandler{repo: repo, logger: logger}
}

// ListAlerts GET /api/alerts/list?tenant_id=&status=&type=&page=&size=
func (h *AlertsHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	tenantID := r.URL.Query().Get("tenant_id")
	if tenantID == "" {
		writeJSON(w, http.StatusOK, Fail("tenant_id is required"))
		return
	}

	filters := repository.AlertFilters{
		Status: r.URL.Query().Get("status"),
		Type:   r.URL.Query().Get("type"),
	}
	page := parseInt(r.URL.Query().Get("page"), 1)
	size := parseInt(r.URL.Query().Get("size"), 20)

	items, total, err := h.repo.ListAlerts(r.Context(), tenantID, filters, page, size)
	if err != nil {
		h.logger.Error("Failed to list alerts", zap.String("tenant_id", tenantID), zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to list alerts"))
		return
	}

	out := make([]any, 0, len(items))
	for _, a := range items {
		out = append(out, a.ToJSON())
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"items": out, "total": total}))
}

// ackAlertRequest body for PUT /api/alerts/acknowledge.
type ackAlertRequest struct {
	TenantID string `json:"tenant_id"`
	AlertID  string `json:"alert_id"`
}

// AcknowledgeAlert PUT /api/alerts/acknowledge
func (h *AlertsHandler) AcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	var req ackAlertRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	if req.TenantID == "" {
		writeJSON(w, http.StatusOK, Fail("tenant_id is required"))
		return
	}
	if req.AlertID == "" {
		writeJSON(w, http.StatusOK, Fail("alert_id is required"))
		return
	}

	if err := h.repo.AcknowledgeAlert(r.Context(), req.TenantID, req.AlertID); err != nil {
		h.logger.Error("Failed to acknowledge alert",
			zap.String("tenant_id", req.TenantID),
			zap.String("alert_id", req.AlertID),
			zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to acknowledge alert"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{"success": true}))
}
