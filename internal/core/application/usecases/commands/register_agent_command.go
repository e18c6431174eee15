package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterAgentCommandIsNotConstructed = errors.New(
	"RegisterAgentCommand must be created via NewRegisterAgentCommand constructor",
)

// RegisterAgentCommand adds a delivery agent. New agents start OFFLINE unless onShift is set;
// an optional initial position is stored as the first location sample.
type RegisterAgentCommand struct {
	agentID  kernel.UUID
	name     string
	onShift  bool
	location *kernel.Location

	guard guard.ConstructorGuard
}

func NewRegisterAgentCommand(
	agentID kernel.UUID,
	name string,
	onShift bool,
	location *kernel.Location,
) (RegisterAgentCommand, error) {
	name = strings.TrimSpace(name)

	var errName, errLocation error
	if name == "" {
		errName = agent.ErrNameIsRequired
	}
	if location != nil {
		errLocation = location.Validate()
	}
	if err := errors.Join(agentID.Validate(), errName, errLocation); err != nil {
		return RegisterAgentCommand{}, err
	}

	cmd := RegisterAgentCommand{
		agentID: agentID,
		name:    name,
		onShift: onShift,
		guard:   guard.NewConstructorGuard(),
	}
	if location != nil {
		loc := *location
		cmd.location = &loc
	}
	return cmd, nil
}

func (c RegisterAgentCommand) Validate() error {
	return c.guard.Validate(ErrRegisterAgentCommandIsNotConstructed)
}

func (c RegisterAgentCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c RegisterAgentCommand) Name() string {
	return c.name
}

func (c RegisterAgentCommand) OnShift() bool {
	return c.onShift
}

func (c RegisterAgentCommand) Location() *kernel.Location {
	if c.location == nil {
		return nil
	}
	loc := *c.location
	return &loc
}
