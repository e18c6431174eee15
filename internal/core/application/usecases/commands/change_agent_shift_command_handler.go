package commands

import (
	"context"
)

type ChangeAgentShiftCommandHandler struct {
	uowFactory AgentUoWFactory
}

func NewChangeAgentShiftCommandHandler(uowFactory AgentUoWFactory) ChangeAgentShiftCommandHandler {
	return ChangeAgentShiftCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns errs.ErrInvalidStateTransition when the agent is already in the requested
// shift state or is BUSY, and errs.ErrConcurrencyConflict when a dispatch reserved it meanwhile.
func (h ChangeAgentShiftCommandHandler) Handle(ctx context.Context, command ChangeAgentShiftCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agents := uow.AgentRepository()
	a, err := agents.Get(ctx, command.AgentID())
	if err != nil {
		return err
	}

	if command.OnShift() {
		err = a.GoOnline()
	} else {
		err = a.GoOffline()
	}
	if err != nil {
		return err
	}

	if err = agents.Update(ctx, a); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
