// Package checkout holds the read models the order workflow validates
// against at creation time: shipping addresses, payment methods and the
// shopping cart. They are owned by other subsystems; this subsystem only
// reads them, except for the transactional cart cleanup during creation.
package checkout

import "context"

// PaymentKind classifies a payment method for the order state machine.
type PaymentKind string

const (
	// PaymentKindCOD cash-on-delivery class methods; orders start Processing.
	PaymentKindCOD PaymentKind = "COD"
	// PaymentKindGateway prepaid/external-gateway methods; orders start
	// awaiting payment until the gateway reports an outcome.
	PaymentKindGateway PaymentKind = "GATEWAY"
)

// Address 收货地址读模型
type Address struct {
	ID     string
	UserID string
	Line   string
}

// PaymentMethod 支付方式读模型
type PaymentMethod struct {
	ID   string
	Name string
	Kind PaymentKind
}

// CartItem 购物车条目读模型
type CartItem struct {
	ID            string
	UserID        string
	ProductItemID string
	Quantity      int
}

// AddressRepository resolves shipping addresses.
type AddressRepository interface {
	FindByID(ctx context.Context, id string) (*Address, error)
}

// PaymentMethodRepository resolves payment methods.
type PaymentMethodRepository interface {
	FindByID(ctx context.Context, id string) (*PaymentMethod, error)
}

// CartRepository mutates the shopping cart.
type CartRepository interface {
	// RemoveItems deletes the user's cart rows matching the given product
	// items. Runs in the enclosing transaction; removing nothing is not an
	// error.
	RemoveItems(ctx context.Context, userID string, productItemIDs []string) error
}
