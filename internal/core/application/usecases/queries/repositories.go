// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Every handler reads through one snapshot, so a ledger history and the
// counters it is compared with belong to the same point in time.
package queries

import (
	"context"

	"waterdelivery/internal/core/ports"
)

type (
	// ReadUoW is a read-only unit of work. Implementations open a snapshot
	// transaction on Begin; Rollback releases it.
	ReadUoW interface {
		Begin(ctx context.Context) error
		Rollback(ctx context.Context) error
		OrderRepository() ports.OrderRepository
		CustomerRepository() ports.CustomerRepository
		LedgerRepository() ports.LedgerRepository
	}

	// ReadUoWFactory creates snapshot units of work.
	ReadUoWFactory interface {
		Create() ReadUoW
	}
)

// read runs fn inside one snapshot.
func read(ctx context.Context, factory ReadUoWFactory, fn func(uow ReadUoW) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return fn(uow)
}
