package memory

import (
	"context"
	"sort"
	"time"

	"orderflow/application/report"
	"orderflow/domain/order"
)

// ReportQuery in-memory implementation of the reporting read side.
type ReportQuery struct {
	store *Store
}

// NewReportQuery Create in-memory report query
func NewReportQuery(store *Store) *ReportQuery {
	return &ReportQuery{store: store}
}

// CancelledOrders mirrors the SQL query: cancelled, non-deleted orders
// joined with the latest Cancelled history entry and the cancel reason.
func (q *ReportQuery) CancelledOrders(_ context.Context) ([]report.CancelledOrderRecord, error) {
	q.store.mu.RLock()
	defer q.store.mu.RUnlock()

	var records []report.CancelledOrderRecord
	for _, dto := range q.store.orders {
		if dto.Status != order.StatusCancelled || dto.Deleted {
			continue
		}

		var refundTime time.Time
		for _, sc := range dto.StatusChanges {
			if sc.Status() == order.StatusCancelled && sc.CreatedAt().After(refundTime) {
				refundTime = sc.CreatedAt()
			}
		}

		var reason string
		var rate int
		if cr, ok := q.store.cancelReasons[dto.CancelReasonID]; ok {
			reason = cr.Description
			rate = cr.RefundRate
		}

		records = append(records, report.CancelledOrderRecord{
			OrderID:       dto.ID,
			UserID:        dto.UserID,
			CustomerName:  q.store.users[dto.UserID].Name,
			TotalAmount:   dto.TotalAmount.Amount(),
			TotalCurrency: dto.TotalAmount.Currency(),
			RefundTime:    refundTime,
			RefundReason:  reason,
			RefundRate:    rate,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].RefundTime.After(records[j].RefundTime)
	})
	return records, nil
}

// DeliveredTotals aggregates revenue and purchase cost over delivered,
// non-deleted orders.
func (q *ReportQuery) DeliveredTotals(_ context.Context) (*report.DeliveredTotals, error) {
	q.store.mu.RLock()
	defer q.store.mu.RUnlock()

	totals := &report.DeliveredTotals{}
	for _, dto := range q.store.orders {
		if dto.Status != order.StatusDelivered || dto.Deleted {
			continue
		}
		totals.OrderCount++
		totals.Revenue += dto.TotalAmount.Amount()
		for _, d := range dto.Details {
			if item, ok := q.store.items[d.ProductItemID()]; ok {
				totals.Cost += int64(d.Quantity()) * item.PurchasePrice.Amount()
			}
		}
	}
	return totals, nil
}

// Compile-time interface implementation check
var _ report.Query = (*ReportQuery)(nil)
