package telemetry

// EdgeDetector fires alerts on rising edges only: a condition entering its
// bad state raises exactly one alert, and re-arms only after the condition
// clears. Stored state is updated on every observation whether or not an
// alert fired, so a long run of identical pushes stays silent.
type EdgeDetector struct {
	state *StateStore
	floor float64
}

// NewEdgeDetector builds a detector with the given low-battery floor,
// expressed in percent.
func NewEdgeDetector(state *StateStore, floor float64) *EdgeDetector {
	return &EdgeDetector{state: state, floor: floor}
}

// LeakageEdge reports whether this observation is a false-to-true
// transition of the leakage flag.
func (d *EdgeDetector) LeakageEdge(tenantID string, leakage bool) bool {
	prev := d.state.LastLeakage(tenantID)
	d.state.SetLeakage(tenantID, leakage)
	return leakage && !prev
}

// BatteryEdge reports whether this observation crossed the low-battery
// floor from above. A unit sitting below the floor does not re-alert until
// the level recovers above it first.
func (d *EdgeDetector) BatteryEdge(tenantID string, percent float64) bool {
	prev := d.state.LastBattery(tenantID)
	d.state.SetBattery(tenantID, percent)
	return percent <= d.floor && prev > d.floor
}
