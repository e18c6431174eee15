package services

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
)

// DefaultMaxRadiusKm is the search radius used when none is configured.
const DefaultMaxRadiusKm = 10.0

// ErrNoAgentAvailable is returned when no eligible agent lies within the search radius.
// It is a soft failure: the order stays CONFIRMED and assignment is retried later.
var ErrNoAgentAvailable = errors.New("no agent available")

// Candidate pairs an agent with its latest position report. Sample is nil for agents
// that never reported a position.
type Candidate struct {
	Agent  *agent.Agent
	Sample *agent.LocationSample
}

// AgentLocatorConfig tunes the agent search.
type AgentLocatorConfig struct {
	// MaxRadiusKm bounds the distance between store and agent. Non-positive means DefaultMaxRadiusKm.
	MaxRadiusKm float64
	// MaxSampleAge excludes agents whose last report is older; zero disables the check.
	MaxSampleAge time.Duration
}

// AgentLocator selects the nearest eligible, available agent for a store.
//
// Business rules:
//   - only active AVAILABLE agents with a position report are ranked
//   - reports older than MaxSampleAge are ignored when the check is enabled
//   - the nearest agent wins only if it lies within MaxRadiusKm of the store
//   - agents listed in exclude are skipped (agents lost to a concurrent dispatch)
type AgentLocator struct {
	distance DistanceCalculator
	cfg      AgentLocatorConfig
	now      func() time.Time
}

// NewAgentLocator creates an AgentLocator. A nil calculator falls back to haversine.
func NewAgentLocator(distance DistanceCalculator, cfg AgentLocatorConfig) AgentLocator {
	if distance == nil {
		distance = NewHaversineCalculator()
	}
	if cfg.MaxRadiusKm <= 0 {
		cfg.MaxRadiusKm = DefaultMaxRadiusKm
	}
	return AgentLocator{distance: distance, cfg: cfg, now: time.Now}
}

// WithClock returns a copy of the locator that reads the current time from now.
func (l AgentLocator) WithClock(now func() time.Time) AgentLocator {
	l.now = now
	return l
}

// MaxRadiusKm returns the effective search radius.
func (l AgentLocator) MaxRadiusKm() float64 {
	return l.cfg.MaxRadiusKm
}

// Nearest returns the closest qualifying agent and its distance from storeLocation in kilometres.
//
// Parameters:
//   - storeLocation: coordinates of the fulfilling store
//   - candidates: agents with their latest sample, typically all AVAILABLE agents
//   - exclude: agents that must not be selected again
//
// Returns:
//   - *agent.Agent: the selected agent
//   - float64: distance from the store
//   - error: ErrNoAgentAvailable when nothing qualifies
func (l AgentLocator) Nearest(
	storeLocation kernel.Location,
	candidates []Candidate,
	exclude ...kernel.UUID,
) (*agent.Agent, float64, error) {
	if err := storeLocation.Validate(); err != nil {
		return nil, 0, err
	}

	now := l.now()
	var (
		best     *agent.Agent
		bestDist float64
	)
	for _, c := range candidates {
		if !l.qualifies(c, now, exclude) {
			continue
		}

		d, err := l.distance.DistanceKm(storeLocation, c.Sample.Location())
		if err != nil {
			return nil, 0, err
		}
		if d > l.cfg.MaxRadiusKm {
			continue
		}
		if best == nil || d < bestDist {
			best, bestDist = c.Agent, d
		}
	}

	if best == nil {
		return nil, 0, ErrNoAgentAvailable
	}
	return best, bestDist, nil
}

func (l AgentLocator) qualifies(c Candidate, now time.Time, exclude []kernel.UUID) bool {
	if c.Agent.Validate() != nil || !c.Agent.IsEligible() {
		return false
	}
	if c.Sample == nil || c.Sample.Validate() != nil {
		return false
	}
	if !c.Sample.AgentID().IsEqual(c.Agent.ID()) {
		return false
	}
	if c.Sample.IsOlderThan(l.cfg.MaxSampleAge, now) {
		return false
	}
	for _, id := range exclude {
		if id.IsEqual(c.Agent.ID()) {
			return false
		}
	}
	return true
}
