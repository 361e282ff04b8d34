/*
Package report Application Layer - read-only reporting over the order data.

Reporting consumes the same data model as the workflow but performs no
mutation: the cancellation list joins each cancelled order with its most
recent Cancelled history entry (the "refund time") and its cancel reason,
and the financial summary aggregates delivered revenue/cost and cancelled
refunds. Refund amounts are computed with the pure refund calculator, not
stored.
*/
package report

import (
	"context"
	"time"

	"orderflow/domain/cancellation"
	"orderflow/domain/shared"
)

// CancelledOrderRecord 存储层返回的取消订单原始行。
type CancelledOrderRecord struct {
	OrderID       string
	UserID        string
	CustomerName  string
	TotalAmount   int64
	TotalCurrency string
	RefundTime    time.Time
	RefundReason  string
	RefundRate    int
}

// DeliveredTotals 已送达订单的营收汇总。
type DeliveredTotals struct {
	OrderCount int64
	Revenue    int64
	Cost       int64
}

// Query is the read-side storage contract.
type Query interface {
	// CancelledOrders returns one row per cancelled, non-deleted order,
	// joined with the latest Cancelled status change and the attached
	// cancel reason (zero-valued reason fields when none was attached).
	CancelledOrders(ctx context.Context) ([]CancelledOrderRecord, error)

	// DeliveredTotals sums order totals and detail purchase costs over
	// delivered, non-deleted orders.
	DeliveredTotals(ctx context.Context) (*DeliveredTotals, error)
}

// CancelledOrderRow 取消订单报表行返回模型。
type CancelledOrderRow struct {
	OrderID      string        `json:"order_id"`
	UserID       string        `json:"user_id"`
	CustomerName string        `json:"customer_name"`
	Total        MoneyResponse `json:"total"`
	RefundTime   time.Time     `json:"refund_time"`
	RefundReason string        `json:"refund_reason"`
	RefundRate   int           `json:"refund_rate"`
	RefundAmount MoneyResponse `json:"refund_amount"`
}

// FinancialSummary 财务汇总返回模型。
type FinancialSummary struct {
	DeliveredOrders int64         `json:"delivered_orders"`
	Revenue         MoneyResponse `json:"revenue"`
	Cost            MoneyResponse `json:"cost"`
	Profit          MoneyResponse `json:"profit"`
	CancelledOrders int64         `json:"cancelled_orders"`
	Refunds         MoneyResponse `json:"refunds"`
}

// MoneyResponse 金额返回模型。
type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Service 报表应用服务
type Service struct {
	query Query
}

// NewService 创建报表应用服务
func NewService(query Query) *Service {
	return &Service{query: query}
}

// CancelledOrders 取消订单列表（含预计退款）
func (s *Service) CancelledOrders(ctx context.Context) ([]CancelledOrderRow, error) {
	records, err := s.query.CancelledOrders(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]CancelledOrderRow, len(records))
	for i, r := range records {
		total := *shared.NewMoney(r.TotalAmount, r.TotalCurrency)
		refund := cancellation.RefundAmount(total, &cancellation.CancelReason{
			Description: r.RefundReason,
			RefundRate:  r.RefundRate,
		})
		rows[i] = CancelledOrderRow{
			OrderID:      r.OrderID,
			UserID:       r.UserID,
			CustomerName: r.CustomerName,
			Total:        MoneyResponse{Amount: total.Amount(), Currency: total.Currency()},
			RefundTime:   r.RefundTime,
			RefundReason: r.RefundReason,
			RefundRate:   r.RefundRate,
			RefundAmount: MoneyResponse{Amount: refund.Amount(), Currency: refund.Currency()},
		}
	}
	return rows, nil
}

// Summary 财务汇总：已送达订单的营收/成本/毛利与取消订单的退款总额。
func (s *Service) Summary(ctx context.Context) (*FinancialSummary, error) {
	delivered, err := s.query.DeliveredTotals(ctx)
	if err != nil {
		return nil, err
	}

	cancelled, err := s.CancelledOrders(ctx)
	if err != nil {
		return nil, err
	}

	var refunds int64
	for _, row := range cancelled {
		refunds += row.RefundAmount.Amount
	}

	cur := shared.DefaultCurrency
	return &FinancialSummary{
		DeliveredOrders: delivered.OrderCount,
		Revenue:         MoneyResponse{Amount: delivered.Revenue, Currency: cur},
		Cost:            MoneyResponse{Amount: delivered.Cost, Currency: cur},
		Profit:          MoneyResponse{Amount: delivered.Revenue - delivered.Cost, Currency: cur},
		CancelledOrders: int64(len(cancelled)),
		Refunds:         MoneyResponse{Amount: refunds, Currency: cur},
	}, nil
}
