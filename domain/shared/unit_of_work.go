package shared

import "context"

// UnitOfWork 管理事务边界与聚合事件收集。
// Execute runs fn inside one storage transaction: every repository call made
// through the ctx it passes participates in that transaction, and any error
// returned by fn rolls the whole transaction back.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
	RegisterRemoved(aggregate AggregateRoot)
}

// UnitOfWorkFactory 工作单元工厂
type UnitOfWorkFactory interface {
	New() UnitOfWork
}
