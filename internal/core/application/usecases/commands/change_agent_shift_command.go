package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrChangeAgentShiftCommandIsNotConstructed = errors.New(
	"ChangeAgentShiftCommand must be created via NewChangeAgentShiftCommand constructor",
)

// ChangeAgentShiftCommand puts an agent on shift (OFFLINE -> AVAILABLE) or off shift
// (AVAILABLE -> OFFLINE). A BUSY agent cannot leave before its order is finished.
type ChangeAgentShiftCommand struct {
	agentID kernel.UUID
	onShift bool

	guard guard.ConstructorGuard
}

func NewChangeAgentShiftCommand(agentID kernel.UUID, onShift bool) (ChangeAgentShiftCommand, error) {
	if err := agentID.Validate(); err != nil {
		return ChangeAgentShiftCommand{}, err
	}

	return ChangeAgentShiftCommand{
		agentID: agentID,
		onShift: onShift,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeAgentShiftCommand) Validate() error {
	return c.guard.Validate(ErrChangeAgentShiftCommandIsNotConstructed)
}

func (c ChangeAgentShiftCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c ChangeAgentShiftCommand) OnShift() bool {
	return c.onShift
}
