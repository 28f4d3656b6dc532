package domain

import "time"

const (
	SensorFlowIn        = "SENS_FLOW_IN"
	UnitLitersPerMin    = "L/min"
	ControlMethodManual = "Manual"
	ControlMethodRemote = "Remote"

	AlertTypeLeakage    = "Leakage"
	AlertTypeLowBattery = "Low Battery"
	AlertStatusActive   = "Active"
	AlertStatusResolved = "Resolved"
)

// SensorLog one throttled flow reading (sensor_logs table).
type SensorLog struct {
	LogID        string    `db:"log_id"` // "LOG_" + 8 hex
	TenantID     string    `db:"tenant_id"`
	SensorID     string    `db:"sensor_id"`
	ReadingValue float64   `db:"reading_value"`
	Unit         string    `db:"unit"`
	RecordedAt   time.Time `db:"recorded_at"`
}

func (l *SensorLog) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"log_id":        l.LogID,
		"sensor_id":     l.SensorID,
		"reading_value": l.ReadingValue,
		"unit":          l.Unit,
		"recorded_at":   l.RecordedAt,
	}
}

// PowerLog one throttled battery/power reading (power_logs table).
type PowerLog struct {
	PowerID        string    `db:"power_id"` // "PWR_" + 8 hex
	TenantID       string    `db:"tenant_id"`
	PowerLevelV    float64   `db:"power_level_v"`
	CurrentA       float64   `db:"current_a"`
	BatteryPercent float64   `db:"battery_percent"`
	RecordedAt     time.Time `db:"recorded_at"`
}

func (l *PowerLog) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"power_id":        l.PowerID,
		"power_level_V":   l.PowerLevelV,
		"current_A":       l.CurrentA,
		"battery_percent": l.BatteryPercent,
		"recorded_at":     l.RecordedAt,
	}
}

// ControlLog one pump control action (control_logs table).
type ControlLog struct {
	ControlID   string    `db:"control_id"` // "CTRL_" + 8 hex
	TenantID    string    `db:"tenant_id"`
	Action      string    `db:"action"`
	Method      string    `db:"method"` // Manual / Remote
	Details     string    `db:"details"`
	ControlTime time.Time `db:"control_time"`
}

func (l *ControlLog) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"control_id":   l.ControlID,
		"action":       l.Action,
		"method":       l.Method,
		"details":      l.Details,
		"control_time": l.ControlTime,
	}
}

// AlertLog one edge-triggered alert (alerts table).
type AlertLog struct {
	AlertID   string    `db:"alert_id"` // "ALERT_" + 8 hex
	TenantID  string    `db:"tenant_id"`
	AlertType string    `db:"alert_type"` // Leakage / Low Battery
	Status    string    `db:"status"`     // Active / Resolved
	Details   string    `db:"details"`
	AlertDate time.Time `db:"alert_date"`
}

func (l *AlertLog) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"alert_id":   l.AlertID,
		"alert_type": l.AlertType,
		"status":     l.Status,
		"details":    l.Details,
		"alert_date": l.AlertDate,
	}
}
