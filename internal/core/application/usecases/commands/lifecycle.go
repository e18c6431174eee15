package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/ports"
)

// recordTracking appends one tracking entry per StatusChanged event. When the event names an
// agent and positions are available, the entry carries the agent's latest position.
func recordTracking(
	ctx context.Context,
	entries ports.TrackingRepository,
	locations ports.LocationRepository,
	events []order.Event,
) error {
	for _, e := range events {
		changed, ok := e.(order.StatusChanged)
		if !ok {
			continue
		}

		var snapshot *tracking.AgentSnapshot
		if changed.AgentID != nil {
			snapshot = &tracking.AgentSnapshot{AgentID: *changed.AgentID, AgentName: changed.AgentName}
			if locations != nil {
				latest, err := locations.Latest(ctx, *changed.AgentID)
				if err != nil {
					return err
				}
				if latest != nil {
					loc := latest.Location()
					snapshot.Location = &loc
				}
			}
		}

		entry, err := tracking.FromStatusChanged(kernel.NewUUID(), changed, snapshot)
		if err != nil {
			return err
		}
		if err = entries.Append(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// releaseAgents returns agents of orders that reached a terminal state to AVAILABLE.
// An agent that is no longer BUSY (for example deactivated and reset by an operator)
// is left untouched.
func releaseAgents(ctx context.Context, agents ports.AgentRepository, events []order.Event) error {
	for _, e := range events {
		changed, ok := e.(order.StatusChanged)
		if !ok || !changed.ReleaseAgent || changed.AgentID == nil {
			continue
		}

		a, err := agents.Get(ctx, *changed.AgentID)
		if err != nil {
			return fmt.Errorf("release agent of order %s: %w", changed.OrderID, err)
		}
		if a.Status() != agent.Busy {
			continue
		}
		if err = a.Release(); err != nil {
			return err
		}
		if err = agents.Update(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
