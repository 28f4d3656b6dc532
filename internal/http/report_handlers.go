package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"aquasolar-cloud/internal/service"
)

// ReportHandler usage reports for the dashboard, inline or as a download.
type ReportHandler struct {
	reports *service.ReportBuilder
	logger  *zap.Logger
}

func NewReportHandler(reports *service.ReportBuilder, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

// GetUsage GET /api/reports/usage?tenant_id=&start_date=&end_date=&limit=
func (h *ReportHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	report, err := h.buildReport(r)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(usageReportJSON(report)))
}

// ExportUsage GET /api/reports/usage/export?tenant_id=&start_date=&end_date=&limit=&format=
//
// format is csv or xlsx, default xlsx.
func (h *ReportHandler) ExportUsage(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "xlsx"
	}
	if format != "csv" && format != "xlsx" {
		writeJSON(w, http.StatusOK, Fail("format must be csv or xlsx"))
		return
	}

	report, err := h.buildReport(r)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	filename := fmt.Sprintf("usage_%s_%s_%s.%s", report.TenantID, report.StartDate, report.EndDate, format)

	var data []byte
	var contentType string
	switch format {
	case "csv":
		data, err = GenerateUsageCSV(report)
		contentType = "text/csv; charset=utf-8"
	default:
		data, err = GenerateUsageWorkbook(report)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		h.logger.Error("Failed to render usage export",
			zap.String("tenant_id", report.TenantID),
			zap.String("format", format),
			zap.Error(err))
		writeJSON(w, http.StatusOK, Fail(fmt.Sprintf("failed to generate export: %v", err)))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *ReportHandler) buildReport(r *http.Request) (*service.UsageReport, error) {
	q := r.URL.Query()
	report, err := h.reports.Usage(
		r.Context(),
		q.Get("tenant_id"),
		q.Get("start_date"),
		q.Get("end_date"),
		parseInt(q.Get("limit"), 0),
	)
	if err != nil {
		h.logger.Error("Failed to build usage report",
			zap.String("tenant_id", q.Get("tenant_id")),
			zap.Error(err))
		return nil, err
	}
	return report, nil
}

func usageReportJSON(report *service.UsageReport) map[string]any {
	consumption := make([]any, 0, len(report.Consumption))
	for _, day := range report.Consumption {
		consumption = append(consumption, day.ToJSON())
	}
	sensorLogs := make([]any, 0, len(report.SensorLogs))
	for _, l := range report.SensorLogs {
		sensorLogs = append(sensorLogs, l.ToJSON())
	}
	powerLogs := make([]any, 0, len(report.PowerLogs))
	for _, l := range report.PowerLogs {
		powerLogs = append(powerLogs, l.ToJSON())
	}
	controlLogs := make([]any, 0, len(report.ControlLogs))
	for _, l := range report.ControlLogs {
		controlLogs = append(controlLogs, l.ToJSON())
	}
	alerts := make([]any, 0, len(report.Alerts))
	for _, a := range report.Alerts {
		alerts = append(alerts, a.ToJSON())
	}

	return map[string]any{
		"tenant_id":      report.TenantID,
		"start_date":     report.StartDate,
		"end_date":       report.EndDate,
		"generated_at":   report.GeneratedAt,
		"total_volume_L": report.TotalVolumeL,
		"total_cycles":   report.TotalCycles,
		"consumption":    consumption,
		"sensor_logs":    sensorLogs,
		"power_logs":     powerLogs,
		"control_logs":   controlLogs,
		"alerts":         alerts,
	}
}
