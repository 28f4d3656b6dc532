package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router standard library http.ServeMux, no third-party routing.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// HandleHandler accepts the http.Handler interface (pprof and friends).
func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterDeviceRoutes the ESP32 firmware endpoints. These answer the bare
// legacy shapes, not the Result envelope.
func (r *Router) RegisterDeviceRoutes(d *DeviceHandler) {
	r.Handle("/api/esp32/status", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		d.PushStatus(w, req)
	})

	r.Handle("/api/esp32/command", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		d.PollCommand(w, req)
	})

	r.Handle("/api/esp32/command/ack", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		d.AckCommand(w, req)
	})
}

// RegisterDashboardRoutes live status and pump control for the dashboard.
func (r *Router) RegisterDashboardRoutes(s *StatusHandler) {
	r.Handle("/api/status-data", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		s.GetStatusData(w, req)
	})

	r.Handle("/api/status-data/fleet", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		s.GetFleet(w, req)
	})

	r.Handle("/api/pump/toggle", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		s.TogglePump(w, req)
	})
}

// RegisterReportRoutes usage reports, inline and export.
func (r *Router) RegisterReportRoutes(h *ReportHandler) {
	r.Handle("/api/reports/usage", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.GetUsage(w, req)
	})

	r.Handle("/api/reports/usage/export", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.ExportUsage(w, req)
	})
}

// RegisterTenantRoutes tenant registry management.
func (r *Router) RegisterTenantRoutes(h *TenantsHandler) {
	r.Handle("/api/tenants/create", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.CreateTenant(w, req)
	})

	r.Handle("/api/tenants/list", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.ListTenants(w, req)
	})

	r.Handle("/api/tenants/get", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.GetTenant(w, req)
	})

	r.Handle("/api/tenants/update", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.UpdateTenant(w, req)
	})

	r.Handle("/api/tenants/delete", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.DeactivateTenant(w, req)
	})
}

// RegisterAlertRoutes alert list and acknowledgement.
func (r *Router) RegisterAlertRoutes(h *AlertsHandler) {
	r.Handle("/api/alerts/list", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.ListAlerts(w, req)
	})

	r.Handle("/api/alerts/acknowledge", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.AcknowledgeAlert(w, req)
	})
}
