package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/store"
)

type RegisterStoreCommandHandler struct {
	uowFactory StoreUoWFactory
}

func NewRegisterStoreCommandHandler(uowFactory StoreUoWFactory) RegisterStoreCommandHandler {
	return RegisterStoreCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RegisterStoreCommandHandler) Handle(ctx context.Context, command RegisterStoreCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	s, err := store.NewStore(command.StoreID(), command.Name(), command.Location(), command.Type())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.StoreRepository().Add(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
