package telemetry

import (
	"sync"
	"time"
)

// Stream and metric keys used by the write-reduction state.
const (
	streamSensor      = "sensor"
	streamPower       = "power"
	streamConsumption = "consumption"

	metricFlowIn  = "flow_in"
	metricBattery = "battery_percent"
)

// defaultBattery is the assumed previous battery level before the first
// observation: "not low", so a unit that boots at 8% still alerts.
const defaultBattery = 100

// StateStore per-tenant write-reduction memory: last log time per stream,
// last logged value per metric, last seen binary alert conditions.
//
// Deliberately process-local and ephemeral. A restart clears it, and the
// next push from each tenant re-logs as a first observation. When several
// instances run without a shared cache, throttling degrades to per-instance
// (more logs than configured, never fewer); accepted.
type StateStore struct {
	mu      sync.Mutex
	tenants map[string]*tenantState
}

type tenantState struct {
	lastLogTime     map[string]time.Time
	lastLoggedValue map[string]float64
	lastLeakage     bool
	lastBattery     float64
}

func NewStateStore() *StateStore {
	return &StateStore{tenants: make(map[string]*tenantState)}
}

// get returns the tenant's state, creating it on first touch. Callers hold mu.
func (s *StateStore) get(tenantID string) *tenantState {
	st, ok := s.tenants[tenantID]
	if !ok {
		st = &tenantState{
			lastLogTime:     make(map[string]time.Time),
			lastLoggedValue: make(map[string]float64),
			lastBattery:     defaultBattery,
		}
		s.tenants[tenantID] = st
	}
	return st
}

// LastLog returns the last append time for a stream, ok=false when the
// stream has never logged for this tenant.
func (s *StateStore) LastLog(tenantID, stream string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.get(tenantID).lastLogTime[stream]
	return t, ok
}

func (s *StateStore) SetLastLog(tenantID, stream string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(tenantID).lastLogTime[stream] = t
}

// LastValue returns the last logged (not last seen) value for a metric,
// nil when the metric has never logged for this tenant.
func (s *StateStore) LastValue(tenantID, metric string) *float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.get(tenantID).lastLoggedValue[metric]
	if !ok {
		return nil
	}
	return &v
}

func (s *StateStore) SetLastValue(tenantID, metric string, v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(tenantID).lastLoggedValue[metric] = v
}

func (s *StateStore) LastLeakage(tenantID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(tenantID).lastLeakage
}

func (s *StateStore) SetLeakage(tenantID string, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(tenantID).lastLeakage = v
}

func (s *StateStore) LastBattery(tenantID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(tenantID).lastBattery
}

func (s *StateStore) SetBattery(tenantID string, v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(tenantID).lastBattery = v
}
