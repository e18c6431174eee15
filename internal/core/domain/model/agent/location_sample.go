package agent

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrLocationSampleIsNotConstructed is returned for a LocationSample built as a literal.
var ErrLocationSampleIsNotConstructed = errors.New("LocationSample must be created via NewLocationSample constructor")

// LocationSample is one immutable position report of an agent. Samples are append-only;
// the most recent one per agent is its last known position.
type LocationSample struct {
	id         kernel.UUID
	agentID    kernel.UUID
	location   kernel.Location
	recordedAt time.Time
	guard      guard.ConstructorGuard
}

// NewLocationSample validates and creates a position report. recordedAt is stored in UTC.
func NewLocationSample(id, agentID kernel.UUID, location kernel.Location, recordedAt time.Time) (LocationSample, error) {
	if err := errors.Join(id.Validate(), agentID.Validate(), location.Validate()); err != nil {
		return LocationSample{}, err
	}
	if recordedAt.IsZero() {
		return LocationSample{}, errs.NewValueIsRequiredError("recordedAt")
	}

	return LocationSample{
		id:         id,
		agentID:    agentID,
		location:   location,
		recordedAt: recordedAt.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the sample was created through NewLocationSample.
func (s LocationSample) Validate() error {
	return s.guard.Validate(ErrLocationSampleIsNotConstructed)
}

// ID returns the sample identifier.
func (s LocationSample) ID() kernel.UUID {
	return s.id
}

// AgentID returns the reporting agent.
func (s LocationSample) AgentID() kernel.UUID {
	return s.agentID
}

// Location returns the reported position.
func (s LocationSample) Location() kernel.Location {
	return s.location
}

// RecordedAt returns when the position was reported.
func (s LocationSample) RecordedAt() time.Time {
	return s.recordedAt
}

// IsOlderThan reports whether the sample was recorded more than maxAge before now.
// A non-positive maxAge disables the check.
func (s LocationSample) IsOlderThan(maxAge time.Duration, now time.Time) bool {
	if maxAge <= 0 {
		return false
	}
	return now.Sub(s.recordedAt) > maxAge
}
