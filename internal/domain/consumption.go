package domain

// ConsumptionRecord one row per tenant per calendar day (consumption table).
// Totals only grow: the row is created on the first qualifying push of the
// day and incremented in the store afterwards.
type ConsumptionRecord struct {
	ConsID           string  `db:"cons_id"` // "CONS_" + 8 hex
	TenantID         string  `db:"tenant_id"`
	ConsumptionDate  string  `db:"consumption_date"` // YYYY-MM-DD, server local date
	ConsumptionTotal float64 `db:"consumption_total"`
	PumpCycles       int     `db:"pump_cycles"`
}

func (r *ConsumptionRecord) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"cons_id":           r.ConsID,
		"consumption_date":  r.ConsumptionDate,
		"consumption_total": r.ConsumptionTotal,
		"pump_cycles":       r.PumpCycles,
	}
}

// ConsumptionSummary rolling-window totals for the dashboard, rounded to
// two decimals by the projector.
type ConsumptionSummary struct {
	Day   float64 `json:"consumption_day"`
	Week  float64 `json:"consumption_week"`
	Month float64 `json:"consumption_month"`
}
