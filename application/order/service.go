/*
Package order Application Layer - order workflow orchestration.

The service coordinates the order-creation transaction and the status
state machine across the order, inventory, voucher, checkout and user
subdomains, using the UnitOfWork to make every mutation atomic:

  - CreateOrder: validate referenced entities -> clean the cart -> reserve
    stock per line item -> apply the voucher discount -> persist the order
    with details and the initial history entry. Any failure rolls back
    every reservation, the voucher usage, the cart cleanup and the order.
  - UpdateStatus: validate the transition, apply compensating effects
    (restock on cancellation, sold-count accrual on delivery), append
    history.

Creation either fully succeeds (one order, consistent stock, consistent
voucher count) or fully fails; no partial state is ever returned.
*/
package order

import (
	"context"

	"orderflow/domain/cancellation"
	"orderflow/domain/checkout"
	"orderflow/domain/inventory"
	"orderflow/domain/order"
	"orderflow/domain/shared"
	"orderflow/domain/user"
	"orderflow/domain/voucher"
)

// GatewayActor is recorded as the updating actor for transitions driven by
// the payment-gateway callback.
const GatewayActor = "payment-gateway"

// ApplicationService 订单应用服务 - 编排订单相关业务流程
type ApplicationService struct {
	orderRepo   order.Repository
	userRepo    user.Repository
	addressRepo checkout.AddressRepository
	paymentRepo checkout.PaymentMethodRepository
	cartRepo    checkout.CartRepository
	voucherRepo voucher.Repository
	reasonRepo  cancellation.Repository
	ledger      *inventory.Ledger
	uowFactory  shared.UnitOfWorkFactory
}

// Dependencies bundles the collaborators of the workflow service.
type Dependencies struct {
	OrderRepo   order.Repository
	UserRepo    user.Repository
	AddressRepo checkout.AddressRepository
	PaymentRepo checkout.PaymentMethodRepository
	CartRepo    checkout.CartRepository
	VoucherRepo voucher.Repository
	ReasonRepo  cancellation.Repository
	Ledger      *inventory.Ledger

	// UnitOfWorkFactory builds one unit of work per workflow invocation,
	// so concurrent requests never share transaction or event state.
	UnitOfWorkFactory shared.UnitOfWorkFactory
}

// NewApplicationService 创建订单应用服务
func NewApplicationService(deps Dependencies) *ApplicationService {
	return &ApplicationService{
		orderRepo:   deps.OrderRepo,
		userRepo:    deps.UserRepo,
		addressRepo: deps.AddressRepo,
		paymentRepo: deps.PaymentRepo,
		cartRepo:    deps.CartRepo,
		voucherRepo: deps.VoucherRepo,
		reasonRepo:  deps.ReasonRepo,
		ledger:      deps.Ledger,
		uowFactory:  deps.UnitOfWorkFactory,
	}
}

// CreateOrder 创建订单
// Runs the whole creation as one unit of work; see the package comment for
// the step ordering. Reference validation happens before any mutation.
func (s *ApplicationService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderSummaryResponse, error) {
	var o *order.Order

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		// 1. Validate referenced entities before touching anything.
		u, err := s.userRepo.FindByID(ctx, req.UserID)
		if err != nil {
			return err
		}
		if !u.Active {
			return user.NewUserNotActiveError(u.ID)
		}
		if _, err := s.addressRepo.FindByID(ctx, req.AddressID); err != nil {
			return err
		}
		pm, err := s.paymentRepo.FindByID(ctx, req.PaymentMethodID)
		if err != nil {
			return err
		}

		var v *voucher.Voucher
		if req.VoucherID != "" {
			if v, err = s.voucherRepo.FindByID(ctx, req.VoucherID); err != nil {
				return err
			}
		}

		// 2. Validate line items and resolve current catalog prices.
		if len(req.Items) == 0 {
			return order.ErrEmptyOrderItems
		}
		itemIDs := make([]string, len(req.Items))
		details := make([]order.DetailRequest, len(req.Items))
		for i, li := range req.Items {
			if li.Quantity <= 0 {
				return order.ErrInvalidQuantity
			}
			item, err := s.ledger.Item(ctx, li.ProductItemID)
			if err != nil {
				return err
			}
			itemIDs[i] = item.ID
			details[i] = order.DetailRequest{
				ProductItemID: item.ID,
				Quantity:      li.Quantity,
				UnitPrice:     item.UnitPrice, // frozen into the detail
			}
		}

		// 3. Cart cleanup is transactional with the creation.
		if err := s.cartRepo.RemoveItems(ctx, req.UserID, itemIDs); err != nil {
			return err
		}

		// 4. Reserve stock per line item.
		for _, d := range details {
			if err := s.ledger.Reserve(ctx, d.ProductItemID, d.Quantity); err != nil {
				return err
			}
		}

		// 5. Consume the voucher usage, exactly once per order.
		discountRate := 0
		if v != nil {
			if err := s.voucherRepo.ConsumeUsage(ctx, v.ID); err != nil {
				return err
			}
			discountRate = v.DiscountRate
		}

		// 6-7. Build the aggregate (computes and validates the total,
		// assigns the initial status, records the first history entry)
		// and persist it with details and history.
		o, err = order.NewOrder(order.PostOptions{
			UserID:          req.UserID,
			AddressID:       req.AddressID,
			PaymentMethodID: pm.ID,
			PaymentKind:     pm.Kind,
			VoucherID:       req.VoucherID,
			DiscountRate:    discountRate,
			Actor:           req.UserID,
			Details:         details,
		})
		if err != nil {
			return err
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}

		uow.RegisterNew(o)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return toSummaryResponse(o), nil
}

// GetOrder 获取订单信息
func (s *ApplicationService) GetOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// GetUserOrders 获取用户的所有订单
func (s *ApplicationService) GetUserOrders(ctx context.Context, userID string) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = toOrderResponse(o)
	}
	return responses, nil
}

// UpdateStatus 更新订单状态
// Validates the transition against the state machine's table, applies the
// compensating effects and appends the history entry, all in one unit of
// work:
//   - Cancelled: release every line item's reserved stock and attach the
//     cancel reason when supplied.
//   - Delivered: accrue each product's sold counter by the line quantity.
func (s *ApplicationService) UpdateStatus(ctx context.Context, req UpdateOrderStatusRequest) error {
	target, ok := order.ParseStatus(req.Status)
	if !ok {
		return shared.NewValidationError("order", "status", "unknown order status: "+req.Status)
	}

	uow := s.uowFactory.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orderRepo.FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}

		if target == order.StatusCancelled && req.CancelReasonID != "" {
			if _, err := s.reasonRepo.FindByID(ctx, req.CancelReasonID); err != nil {
				return err
			}
			o.AttachCancelReason(req.CancelReasonID)
		}

		// Transition first so compensations never run for a rejected move.
		if err := o.TransitionTo(target, req.Actor); err != nil {
			return err
		}

		switch target {
		case order.StatusCancelled:
			for _, d := range o.Details() {
				if err := s.ledger.Release(ctx, d.ProductItemID(), d.Quantity()); err != nil {
					return err
				}
			}
		case order.StatusDelivered:
			for _, d := range o.Details() {
				if err := s.ledger.RecordSale(ctx, d.ProductItemID(), d.Quantity()); err != nil {
					return err
				}
			}
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}

		uow.RegisterDirty(o)
		return nil
	})
}

// ChangePaymentMethod 更换支付方式
// Only allowed while the order is awaiting payment; a cash-on-delivery
// target forces the order into Processing with a history entry.
func (s *ApplicationService) ChangePaymentMethod(ctx context.Context, req ChangePaymentMethodRequest) error {
	uow := s.uowFactory.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orderRepo.FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}

		pm, err := s.paymentRepo.FindByID(ctx, req.PaymentMethodID)
		if err != nil {
			return err
		}

		if err := o.ChangePaymentMethod(pm, req.Actor); err != nil {
			return err
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}

		uow.RegisterDirty(o)
		return nil
	})
}

// ApplyPaymentResult 将支付网关的结果信号翻译为状态转换。
// Success moves the order to Processing, failure to PaymentFailed; the
// gateway's signature verification and QR generation are not this
// subsystem's concern.
func (s *ApplicationService) ApplyPaymentResult(ctx context.Context, req PaymentResultRequest) error {
	target := order.StatusPaymentFailed
	if req.Succeeded {
		target = order.StatusProcessing
	}
	return s.UpdateStatus(ctx, UpdateOrderStatusRequest{
		OrderID: req.OrderID,
		Status:  string(target),
		Actor:   GatewayActor,
	})
}
