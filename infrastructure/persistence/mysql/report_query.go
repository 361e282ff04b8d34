package mysql

import (
	"context"
	"time"

	"orderflow/application/report"
	"orderflow/domain/order"
	"orderflow/infrastructure/persistence"

	"gorm.io/gorm"
)

// ReportQuery MySQL/GORM implementation of the reporting read side.
// Raw SQL over the workflow tables; no aggregates are loaded.
type ReportQuery struct {
	db *gorm.DB
}

// NewReportQuery Create report query
func NewReportQuery(db *gorm.DB) *ReportQuery {
	return &ReportQuery{db: db}
}

func (q *ReportQuery) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return q.db.WithContext(ctx)
}

type cancelledOrderRow struct {
	OrderID       string
	UserID        string
	CustomerName  string
	TotalAmount   int64
	TotalCurrency string
	RefundTime    time.Time
	RefundReason  string
	RefundRate    int
}

// CancelledOrders lists cancelled, non-deleted orders with the time of the
// latest Cancelled history entry and the attached cancel reason.
func (q *ReportQuery) CancelledOrders(ctx context.Context) ([]report.CancelledOrderRecord, error) {
	var rows []cancelledOrderRow

	err := q.getDB(ctx).Raw(`
		SELECT o.id AS order_id,
		       o.user_id AS user_id,
		       u.name AS customer_name,
		       o.total_amount AS total_amount,
		       o.total_currency AS total_currency,
		       sc.created_at AS refund_time,
		       COALESCE(cr.description, '') AS refund_reason,
		       COALESCE(cr.refund_rate, 0) AS refund_rate
		FROM orders o
		JOIN users u ON u.id = o.user_id
		JOIN status_changes sc ON sc.order_id = o.id
		    AND sc.status = ?
		    AND sc.created_at = (
		        SELECT MAX(s2.created_at) FROM status_changes s2
		        WHERE s2.order_id = o.id AND s2.status = ?
		    )
		LEFT JOIN cancel_reasons cr ON cr.id = o.cancel_reason_id
		WHERE o.status = ? AND o.deleted = FALSE
		ORDER BY sc.created_at DESC`,
		string(order.StatusCancelled), string(order.StatusCancelled), string(order.StatusCancelled),
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]report.CancelledOrderRecord, len(rows))
	for i, r := range rows {
		records[i] = report.CancelledOrderRecord{
			OrderID:       r.OrderID,
			UserID:        r.UserID,
			CustomerName:  r.CustomerName,
			TotalAmount:   r.TotalAmount,
			TotalCurrency: r.TotalCurrency,
			RefundTime:    r.RefundTime,
			RefundReason:  r.RefundReason,
			RefundRate:    r.RefundRate,
		}
	}
	return records, nil
}

// DeliveredTotals aggregates revenue and purchase cost over delivered,
// non-deleted orders. Cost uses the catalog's current purchase price; it is
// not frozen into order details.
func (q *ReportQuery) DeliveredTotals(ctx context.Context) (*report.DeliveredTotals, error) {
	db := q.getDB(ctx)

	var totals struct {
		OrderCount int64
		Revenue    int64
	}
	err := db.Raw(`
		SELECT COUNT(*) AS order_count,
		       COALESCE(SUM(total_amount), 0) AS revenue
		FROM orders
		WHERE status = ? AND deleted = FALSE`,
		string(order.StatusDelivered),
	).Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	var cost int64
	err = db.Raw(`
		SELECT COALESCE(SUM(od.quantity * pi.purchase_price), 0)
		FROM order_details od
		JOIN orders o ON o.id = od.order_id
		JOIN product_items pi ON pi.id = od.product_item_id
		WHERE o.status = ? AND o.deleted = FALSE`,
		string(order.StatusDelivered),
	).Scan(&cost).Error
	if err != nil {
		return nil, err
	}

	return &report.DeliveredTotals{
		OrderCount: totals.OrderCount,
		Revenue:    totals.Revenue,
		Cost:       cost,
	}, nil
}

// Compile-time interface implementation check
var _ report.Query = (*ReportQuery)(nil)
