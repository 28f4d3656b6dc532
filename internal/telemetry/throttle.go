package telemetry

import "time"

// ThrottleGate decides, per tenant and per stream, whether a push earns a
// durable log row. A write passes when the stream's interval has elapsed
// since its last append, or when the gating metric moved by at least its
// threshold since the last logged value. Either branch alone is enough.
type ThrottleGate struct {
	state *StateStore
}

func NewThrottleGate(state *StateStore) *ThrottleGate {
	return &ThrottleGate{state: state}
}

// ShouldLog is the interval-or-significance gate. It reads state only;
// callers record the append with MarkLogged after the row is durably
// written, so a failed insert leaves the gate open for the next push.
func (g *ThrottleGate) ShouldLog(tenantID, stream, metric string, value float64, interval time.Duration, threshold float64, now time.Time) bool {
	last, ok := g.state.LastLog(tenantID, stream)
	if !ok || now.Sub(last) >= interval {
		return true
	}
	return Significant(value, g.state.LastValue(tenantID, metric), threshold)
}

// IntervalElapsed is the time-only gate used by streams with no
// significance branch, such as the consumption counters.
func (g *ThrottleGate) IntervalElapsed(tenantID, stream string, interval time.Duration, now time.Time) bool {
	last, ok := g.state.LastLog(tenantID, stream)
	return !ok || now.Sub(last) >= interval
}

// MarkLogged records a successful append: the stream's clock and the
// metric's last logged value move together.
func (g *ThrottleGate) MarkLogged(tenantID, stream, metric string, value float64, now time.Time) {
	g.state.SetLastLog(tenantID, stream, now)
	g.state.SetLastValue(tenantID, metric, value)
}

// MarkInterval records a successful append for a time-only stream.
func (g *ThrottleGate) MarkInterval(tenantID, stream string, now time.Time) {
	g.state.SetLastLog(tenantID, stream, now)
}
