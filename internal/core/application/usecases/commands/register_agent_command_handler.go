package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
)

type RegisterAgentCommandHandler struct {
	uowFactory AgentUoWFactory
	now        func() time.Time
}

func NewRegisterAgentCommandHandler(uowFactory AgentUoWFactory) RegisterAgentCommandHandler {
	return RegisterAgentCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func (h RegisterAgentCommandHandler) Handle(ctx context.Context, command RegisterAgentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	a, err := agent.NewAgent(command.AgentID(), command.Name())
	if err != nil {
		return err
	}
	if command.OnShift() {
		if err = a.GoOnline(); err != nil {
			return err
		}
	}

	var sample *agent.LocationSample
	if loc := command.Location(); loc != nil {
		s, err := agent.NewLocationSample(kernel.NewUUID(), a.ID(), *loc, h.now())
		if err != nil {
			return err
		}
		sample = &s
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AgentRepository().Add(ctx, a); err != nil {
		return err
	}
	if sample != nil {
		if err = uow.LocationRepository().Append(ctx, *sample); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
