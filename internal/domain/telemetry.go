package domain

import "time"

// Pump states reported by the field unit. An empty string means the state
// has never been reported.
const (
	PumpOn  = "ON"
	PumpOff = "OFF"
)

// TelemetryPush one inbound report from a field unit. Metric fields are
// pointers: an absent field means the unit did not measure it this cycle,
// and every consumer skips its own work rather than assuming zero.
type TelemetryPush struct {
	TenantID        string   `json:"tenant_id"`
	FlowInLMin      *float64 `json:"flow_in_L_min,omitempty"`
	FlowOutLMin     *float64 `json:"flow_out_L_min,omitempty"`
	VolumeInL       *float64 `json:"volume_in_L,omitempty"`
	VolumeOutL      *float64 `json:"volume_out_L,omitempty"`
	BatteryPercent  *float64 `json:"battery_percent,omitempty"`
	BatteryVoltageV *float64 `json:"battery_voltage_V,omitempty"`
	CurrentA        *float64 `json:"current_A,omitempty"`
	PumpState       string   `json:"pump_state,omitempty"`
	LeakageDetected *bool    `json:"leakage_detected,omitempty"`
}

// StatusSnapshot the single current-state document per tenant. Overwritten
// in place on every push; read at high frequency by the dashboard.
type StatusSnapshot struct {
	FlowInLMin      float64   `json:"flow_in_L_min"`
	FlowOutLMin     float64   `json:"flow_out_L_min"`
	VolumeInL       float64   `json:"volume_in_L"`
	VolumeOutL      float64   `json:"volume_out_L"`
	BatteryPercent  float64   `json:"battery_percent"`
	BatteryVoltageV float64   `json:"battery_voltage_V"`
	CurrentA        float64   `json:"current_A"`
	PumpState       string    `json:"pump_state"`
	LeakageDetected bool      `json:"leakage_detected"`
	LastUpdate      time.Time `json:"last_update"`
}

// Apply merges one push into the snapshot. Present fields replace, absent
// fields keep their prior value, LastUpdate is always refreshed.
func (s *StatusSnapshot) Apply(p *TelemetryPush, now time.Time) {
	if p.FlowInLMin != nil {
		s.FlowInLMin = *p.FlowInLMin
	}
	if p.FlowOutLMin != nil {
		s.FlowOutLMin = *p.FlowOutLMin
	}
	if p.VolumeInL != nil {
		s.VolumeInL = *p.VolumeInL
	}
	if p.VolumeOutL != nil {
		s.VolumeOutL = *p.VolumeOutL
	}
	if p.BatteryPercent != nil {
		s.BatteryPercent = *p.BatteryPercent
	}
	if p.BatteryVoltageV != nil {
		s.BatteryVoltageV = *p.BatteryVoltageV
	}
	if p.CurrentA != nil {
		s.CurrentA = *p.CurrentA
	}
	if p.PumpState != "" {
		s.PumpState = p.PumpState
	}
	if p.LeakageDetected != nil {
		s.LeakageDetected = *p.LeakageDetected
	}
	s.LastUpdate = now
}
