package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"aquasolar-cloud/internal/domain"
	"aquasolar-cloud/internal/repository"
	"aquasolar-cloud/internal/service"
	"aquasolar-cloud/internal/telemetry"
)

// DeviceHandler the ESP32-facing endpoints. Responses here are bare legacy
// shapes, not the Result envelope: the firmware parses fixed keys.
type DeviceHandler struct {
	processor *telemetry.Processor
	commands  repository.CommandsRepository
	pump      *service.PumpController
	logger    *zap.Logger
}

func NewDeviceHandler(
	processor *telemetry.Processor,
	commands repository.CommandsRepository,
	pump *service.PumpController,
	logger *zap.Logger,
) *DeviceHandler {
	return &DeviceHandler{
		processor: processor,
		commands:  commands,
		pump:      pump,
		logger:    logger,
	}
}

// PushStatus ingests one telemetry report and piggybacks any pending
// command on the response.
func (h *DeviceHandler) PushStatus(w http.ResponseWriter, r *http.Request) {
	var push domain.TelemetryPush
	if err := readBodyJSON(r, 1<<20, &push); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid body"})
		return
	}
	if push.TenantID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "tenant_id is required"})
		return
	}

	res, err := h.processor.Process(r.Context(), &push)
	if err != nil {
		h.logger.Error("Failed to process telemetry push",
			zap.String("tenant_id", push.TenantID),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to process status update"})
		return
	}

	response := map[string]any{"status": "ok"}
	if res.Command != domain.CommandNone {
		response["command"] = res.Command
	}
	writeJSON(w, http.StatusOK, response)
}

// PollCommand hands out the pending command. The answer always carries a
// "command" key, "NONE" when the mailbox is idle.
func (h *DeviceHandler) PollCommand(w http.ResponseWriter, r *http.Request) {
	tenantID := r.URL.Query().Get("tenant_id")
	if tenantID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "tenant_id is required"})
		return
	}

	action, err := h.commands.Deliver(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("Failed to deliver command",
			zap.String("tenant_id", tenantID),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to get command"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"command": action})
}

type ackRequest struct {
	TenantID string `json:"tenant_id"`
	Action   string `json:"action"`
}

// AckCommand closes the loop after the unit executed a delivered command.
func (h *DeviceHandler) AckCommand(w http.ResponseWriter, r *http.Request) {
	var req ackRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid body"})
		return
	}
	if req.TenantID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "tenant_id is required"})
		return
	}

	if _, err := h.pump.Acknowledge(r.Context(), req.TenantID, req.Action); err != nil {
		if errors.Is(err, repository.ErrNoCommand) {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "no command outstanding"})
			return
		}
		h.logger.Error("Failed to acknowledge command",
			zap.String("tenant_id", req.TenantID),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to acknowledge command"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "acknowledged"})
}
