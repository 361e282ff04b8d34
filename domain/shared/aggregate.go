package shared

import "time"

// AggregateRoot 聚合根接口
// 聚合根是聚合的入口点，维护聚合的一致性边界：
// 1. 有全局唯一标识
// 2. 维护聚合内部的不变量
// 3. 所有修改必须通过聚合根进行
// 4. 负责记录领域事件
type AggregateRoot interface {
	// ID 返回聚合根的全局唯一标识
	ID() string

	// Version 返回当前版本号，用于乐观锁并发控制
	Version() int

	// PullEvents 获取并清空聚合根记录的领域事件
	PullEvents() []DomainEvent
}

// DomainEvent 领域事件接口
// 聚合根在状态变更时记录事件，工作单元在事务提交前收集。
type DomainEvent interface {
	EventName() string
	GetAggregateID() string
	OccurredOn() time.Time
}
