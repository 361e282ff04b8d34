package mysql

import (
	"context"
	"fmt"

	"orderflow/domain/shared"
	"orderflow/infrastructure/persistence"
	"orderflow/infrastructure/persistence/retry"
	"orderflow/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UnitOfWork implements the Unit of Work pattern with GORM
// It manages database transactions and collects domain events from aggregates.
// An instance serves a single workflow invocation and is not safe for
// concurrent use; create one per request through UnitOfWorkFactory.
type UnitOfWork struct {
	db          *gorm.DB
	aggregates  []shared.AggregateRoot
	retryConfig retry.Config
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:          db,
		aggregates:  make([]shared.AggregateRoot, 0),
		retryConfig: retry.DefaultConfig,
	}
}

// SetRetryConfig updates the retry configuration for this UnitOfWork
func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

// Execute runs the business logic inside a database transaction
// It:
// 1. Begins a transaction
// 2. Injects the transaction into context for repositories to use
// 3. Executes the business function
// 4. Commits on success, rolls back on error
// 5. Publishes events from registered aggregates after commit
// 6. Automatically retries on retryable errors (concurrent modification, deadlocks, etc.)
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	executeOnce := func(ctx context.Context) error {
		// Reset aggregates for this attempt
		u.aggregates = make([]shared.AggregateRoot, 0)

		tx := u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}

		txCtx := persistence.ContextWithTx(ctx, tx)

		if err := fn(txCtx); err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}

		// Events are published only after the commit succeeded, so a
		// rolled-back attempt never leaks events.
		u.publishEvents(ctx)

		return nil
	}

	return retry.ExecuteWithRetry(ctx, u.retryConfig, executeOnce)
}

// publishEvents drains events from registered aggregates and emits them
// to the structured log.
func (u *UnitOfWork) publishEvents(ctx context.Context) {
	for _, agg := range u.aggregates {
		for _, event := range agg.PullEvents() {
			logger.Info("domain event",
				zap.String("event", event.EventName()),
				zap.String("aggregate_id", event.GetAggregateID()),
				zap.Time("occurred_on", event.OccurredOn()),
				zap.String("request_id", persistence.RequestIDFromContext(ctx)),
			)
		}
	}
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
