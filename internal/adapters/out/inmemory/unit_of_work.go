package inmemory

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// ErrTransactionIsNotStarted is returned by Commit without a preceding Begin.
var ErrTransactionIsNotStarted = errors.New("transaction is not started")

func errDuplicate(id kernel.UUID) error {
	return fmt.Errorf("%s already exists", id)
}

// UnitOfWork implements ports.UnitOfWork. Without Begin every write is applied immediately,
// the way the postgres driver falls back to the connection pool.
type UnitOfWork struct {
	storage *Storage
	active  bool
	changes changeSet
}

func newUnitOfWork(storage *Storage) *UnitOfWork {
	return &UnitOfWork{storage: storage}
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	u.active = true
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrTransactionIsNotStarted
	}

	err := u.storage.apply(&u.changes)
	u.reset()
	return err
}

// Rollback drops staged writes. After Commit, or without Begin, it does nothing.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	u.reset()
	return nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: u}
}

func (u *UnitOfWork) StoreRepository() ports.StoreRepository {
	return &storeRepository{uow: u}
}

func (u *UnitOfWork) AgentRepository() ports.AgentRepository {
	return &agentRepository{uow: u}
}

func (u *UnitOfWork) LocationRepository() ports.LocationRepository {
	return &locationRepository{uow: u}
}

func (u *UnitOfWork) TrackingRepository() ports.TrackingRepository {
	return &trackingRepository{uow: u}
}

// flush applies staged writes at once when no transaction is open.
func (u *UnitOfWork) flush() error {
	if u.active {
		return nil
	}
	err := u.storage.apply(&u.changes)
	u.reset()
	return err
}

func (u *UnitOfWork) reset() {
	u.active = false
	u.changes = changeSet{}
}
