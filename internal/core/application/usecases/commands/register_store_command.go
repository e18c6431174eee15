package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterStoreCommandIsNotConstructed = errors.New(
	"RegisterStoreCommand must be created via NewRegisterStoreCommand constructor",
)

// RegisterStoreCommand adds a fulfillment location. A store registered without coordinates
// exists but is never selected until it is relocated.
type RegisterStoreCommand struct {
	storeID   kernel.UUID
	name      string
	location  *kernel.Location
	storeType store.Type

	guard guard.ConstructorGuard
}

func NewRegisterStoreCommand(
	storeID kernel.UUID,
	name string,
	location *kernel.Location,
	storeType store.Type,
) (RegisterStoreCommand, error) {
	name = strings.TrimSpace(name)

	var errName, errLocation error
	if name == "" {
		errName = store.ErrNameIsRequired
	}
	if location != nil {
		errLocation = location.Validate()
	}
	if err := errors.Join(storeID.Validate(), errName, errLocation, storeType.Validate()); err != nil {
		return RegisterStoreCommand{}, err
	}

	cmd := RegisterStoreCommand{
		storeID:   storeID,
		name:      name,
		storeType: storeType,
		guard:     guard.NewConstructorGuard(),
	}
	if location != nil {
		loc := *location
		cmd.location = &loc
	}
	return cmd, nil
}

func (c RegisterStoreCommand) Validate() error {
	return c.guard.Validate(ErrRegisterStoreCommandIsNotConstructed)
}

func (c RegisterStoreCommand) StoreID() kernel.UUID {
	return c.storeID
}

func (c RegisterStoreCommand) Name() string {
	return c.name
}

func (c RegisterStoreCommand) Location() *kernel.Location {
	if c.location == nil {
		return nil
	}
	loc := *c.location
	return &loc
}

func (c RegisterStoreCommand) Type() store.Type {
	return c.storeType
}
