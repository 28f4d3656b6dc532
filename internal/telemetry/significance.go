package telemetry

import "math"

// Significant reports whether a new reading differs enough from the last
// logged value to justify a durable log entry even inside the throttle
// interval. A metric with no logged value yet is always significant, so a
// tenant's first observation is never suppressed.
func Significant(value float64, lastLogged *float64, threshold float64) bool {
	if lastLogged == nil {
		return true
	}
	return math.Abs(value-*lastLogged) >= threshold
}
