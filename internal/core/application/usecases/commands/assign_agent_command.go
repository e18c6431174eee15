package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignAgentCommandIsNotConstructed = errors.New(
	"AssignAgentCommand must be created via NewAssignAgentCommand or NewAutoAssignAgentCommand constructor",
)

// AssignAgentCommand attaches a delivery agent to a CONFIRMED order.
//
// Two modes exist:
//   - auto (NewAutoAssignAgentCommand): the nearest eligible agent around the store is searched,
//     lost reservations are retried with the next candidate
//   - manual (NewAssignAgentCommand): an operator names the agent; conflicts are reported, not retried
//
// Example:
//
//	cmd, _ := NewAutoAssignAgentCommand(orderID, "retry-job")
//	assignment, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrNoAgentAvailable) {
//	    // the order stays CONFIRMED, try again later
//	}
type AssignAgentCommand struct {
	orderID kernel.UUID
	agentID *kernel.UUID
	actor   string

	guard guard.ConstructorGuard
}

// NewAssignAgentCommand creates a manual assignment of agentID to orderID.
func NewAssignAgentCommand(orderID, agentID kernel.UUID, actor string) (AssignAgentCommand, error) {
	if err := errors.Join(orderID.Validate(), agentID.Validate()); err != nil {
		return AssignAgentCommand{}, err
	}

	return AssignAgentCommand{
		orderID: orderID,
		agentID: &agentID,
		actor:   strings.TrimSpace(actor),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// NewAutoAssignAgentCommand creates an assignment that searches the nearest agent.
func NewAutoAssignAgentCommand(orderID kernel.UUID, actor string) (AssignAgentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignAgentCommand{}, err
	}

	return AssignAgentCommand{
		orderID: orderID,
		actor:   strings.TrimSpace(actor),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AssignAgentCommand) Validate() error {
	return c.guard.Validate(ErrAssignAgentCommandIsNotConstructed)
}

func (c AssignAgentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID returns the requested agent, or nil in auto mode.
func (c AssignAgentCommand) AgentID() *kernel.UUID {
	if c.agentID == nil {
		return nil
	}
	id := *c.agentID
	return &id
}

func (c AssignAgentCommand) IsAuto() bool {
	return c.agentID == nil
}

func (c AssignAgentCommand) Actor() string {
	return c.actor
}
