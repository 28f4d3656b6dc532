package telemetry

import (
	"time"

	"aquasolar-cloud/internal/domain"
)

// Online reports whether a unit's snapshot is fresh enough to call the
// unit online: strictly less than the window since its last update. A
// missing snapshot or zero timestamp is offline.
func Online(snap *domain.StatusSnapshot, window time.Duration, now time.Time) bool {
	if snap == nil || snap.LastUpdate.IsZero() {
		return false
	}
	return now.Sub(snap.LastUpdate) < window
}
