package order

import "orderflow/domain/order"

func toSummaryResponse(o *order.Order) *OrderSummaryResponse {
	return &OrderSummaryResponse{
		ID:     o.ID(),
		Status: string(o.Status()),
		TotalAmount: MoneyResponse{
			Amount:   o.TotalAmount().Amount(),
			Currency: o.TotalAmount().Currency(),
		},
		CreatedAt: o.CreatedAt(),
	}
}

func toOrderResponse(o *order.Order) *OrderResponse {
	details := make([]OrderDetailResponse, len(o.Details()))
	for i, d := range o.Details() {
		details[i] = OrderDetailResponse{
			ProductItemID: d.ProductItemID(),
			Quantity:      d.Quantity(),
			UnitPrice: MoneyResponse{
				Amount:   d.UnitPrice().Amount(),
				Currency: d.UnitPrice().Currency(),
			},
			Subtotal: MoneyResponse{
				Amount:   d.Subtotal().Amount(),
				Currency: d.Subtotal().Currency(),
			},
		}
	}

	history := make([]StatusChangeResponse, len(o.StatusHistory()))
	for i, sc := range o.StatusHistory() {
		history[i] = StatusChangeResponse{
			Status:    string(sc.Status()),
			CreatedAt: sc.CreatedAt(),
		}
	}

	return &OrderResponse{
		ID:              o.ID(),
		UserID:          o.UserID(),
		AddressID:       o.AddressID(),
		PaymentMethodID: o.PaymentMethodID(),
		VoucherID:       o.VoucherID(),
		CancelReasonID:  o.CancelReasonID(),
		Details:         details,
		StatusHistory:   history,
		TotalAmount: MoneyResponse{
			Amount:   o.TotalAmount().Amount(),
			Currency: o.TotalAmount().Currency(),
		},
		Status:    string(o.Status()),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}
