package memory

import (
	"sync"

	"orderflow/domain/shared"
)

// UnitOfWorkFactory hands out one UnitOfWork per workflow invocation.
// All units of work built by one factory share the store-wide transaction
// mutex, and their published events land in a common log so tests can
// assert on what was committed regardless of which instance ran it.
type UnitOfWorkFactory struct {
	store *Store
	txMu  sync.Mutex

	evMu     sync.Mutex
	executed []shared.DomainEvent
}

// NewUnitOfWorkFactory creates a factory over the store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// New builds a fresh unit of work with its own aggregate registration state.
func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	return &UnitOfWork{
		store:      f.store,
		txMu:       &f.txMu,
		aggregates: make([]shared.AggregateRoot, 0),
		sink:       f,
	}
}

// ExecutedEvents returns a copy of every event published through units of
// work built by this factory, in commit order.
func (f *UnitOfWorkFactory) ExecutedEvents() []shared.DomainEvent {
	f.evMu.Lock()
	defer f.evMu.Unlock()
	out := make([]shared.DomainEvent, len(f.executed))
	copy(out, f.executed)
	return out
}

func (f *UnitOfWorkFactory) record(events []shared.DomainEvent) {
	f.evMu.Lock()
	defer f.evMu.Unlock()
	f.executed = append(f.executed, events...)
}

// Compile-time check that UnitOfWorkFactory implements shared.UnitOfWorkFactory
var _ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
