package memory

import (
	"context"
	"sync"

	"orderflow/domain/shared"
)

// UnitOfWork transaction simulation over the in-memory store.
// A snapshot of the whole store is taken before the wrapped function runs
// and restored when it fails, so a failing workflow leaves no partial
// writes behind. Units of work are serialized with a store-wide mutex,
// which stands in for database isolation.
type UnitOfWork struct {
	store      *Store
	txMu       *sync.Mutex
	aggregates []shared.AggregateRoot
	sink       *UnitOfWorkFactory // set when built by a factory

	// ExecutedEvents collects events drained after successful execution,
	// so tests can assert on what was published.
	ExecutedEvents []shared.DomainEvent
}

// NewUnitOfWork creates a standalone unit of work over the store.
func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{
		store:      store,
		txMu:       &sync.Mutex{},
		aggregates: make([]shared.AggregateRoot, 0),
	}
}

// Execute runs fn against the store with rollback-on-error semantics.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.txMu.Lock()
	defer u.txMu.Unlock()

	u.aggregates = make([]shared.AggregateRoot, 0)
	snap := u.store.snapshot()

	if err := fn(ctx); err != nil {
		u.store.restore(snap)
		return err
	}

	for _, agg := range u.aggregates {
		events := agg.PullEvents()
		u.ExecutedEvents = append(u.ExecutedEvents, events...)
		if u.sink != nil {
			u.sink.record(events)
		}
	}
	return nil
}

// RegisterNew registers a newly created aggregate root for event collection
func (u *UnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// RegisterDirty registers a modified aggregate root for event collection
func (u *UnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// RegisterRemoved registers a deleted aggregate root for event collection
func (u *UnitOfWork) RegisterRemoved(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// Compile-time check that UnitOfWork implements shared.UnitOfWork
var _ shared.UnitOfWork = (*UnitOfWork)(nil)
