/*
Package memory in-memory storage implementation.

Backs the full repository surface with mutex-guarded maps. Used by the
test suites and by the "memory" database type for local development. The
UnitOfWork in this package restores a snapshot of the whole store when the
wrapped function fails, giving the same all-or-nothing behavior as a real
database transaction.
*/
package memory

import (
	"context"
	"sync"

	"orderflow/domain/cancellation"
	"orderflow/domain/checkout"
	"orderflow/domain/inventory"
	"orderflow/domain/order"
	"orderflow/domain/shared"
	"orderflow/domain/user"
	"orderflow/domain/voucher"
)

// productState 商品目录条目（仅销量计数相关）
type productState struct {
	ID        string
	Name      string
	SoldCount int
}

// Store holds every table as a map. All access goes through the mutex.
type Store struct {
	mu sync.RWMutex

	users          map[string]user.User
	addresses      map[string]checkout.Address
	paymentMethods map[string]checkout.PaymentMethod
	cartItems      map[string]checkout.CartItem
	vouchers       map[string]voucher.Voucher
	cancelReasons  map[string]cancellation.CancelReason
	products       map[string]productState
	items          map[string]inventory.ProductItem
	orders         map[string]order.ReconstructionDTO
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:          make(map[string]user.User),
		addresses:      make(map[string]checkout.Address),
		paymentMethods: make(map[string]checkout.PaymentMethod),
		cartItems:      make(map[string]checkout.CartItem),
		vouchers:       make(map[string]voucher.Voucher),
		cancelReasons:  make(map[string]cancellation.CancelReason),
		products:       make(map[string]productState),
		items:          make(map[string]inventory.ProductItem),
		orders:         make(map[string]order.ReconstructionDTO),
	}
}

// ============================================================================
// Seeding helpers - test and development fixtures
// ============================================================================

func (s *Store) AddUser(u user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *Store) AddAddress(a checkout.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addresses[a.ID] = a
}

func (s *Store) AddPaymentMethod(pm checkout.PaymentMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paymentMethods[pm.ID] = pm
}

func (s *Store) AddCartItem(ci checkout.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartItems[ci.ID] = ci
}

func (s *Store) AddVoucher(v voucher.Voucher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vouchers[v.ID] = v
}

func (s *Store) AddCancelReason(cr cancellation.CancelReason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelReasons[cr.ID] = cr
}

func (s *Store) AddProduct(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[id] = productState{ID: id, Name: name}
}

func (s *Store) AddProductItem(item inventory.ProductItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	if _, ok := s.products[item.ProductID]; !ok {
		s.products[item.ProductID] = productState{ID: item.ProductID}
	}
}

// StockOf reports the current stock of an item. Test inspection helper.
func (s *Store) StockOf(itemID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items[itemID].QuantityInStock
}

// RemainingUsageOf reports a voucher's remaining usage. Test inspection helper.
func (s *Store) RemainingUsageOf(voucherID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vouchers[voucherID].RemainingUsage
}

// SoldCountOf reports a product's sold counter. Test inspection helper.
func (s *Store) SoldCountOf(productID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products[productID].SoldCount
}

// CartSizeOf reports how many cart rows a user has. Test inspection helper.
func (s *Store) CartSizeOf(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, ci := range s.cartItems {
		if ci.UserID == userID {
			n++
		}
	}
	return n
}

// ============================================================================
// Snapshot / restore - transaction simulation
// ============================================================================

type snapshot struct {
	users          map[string]user.User
	addresses      map[string]checkout.Address
	paymentMethods map[string]checkout.PaymentMethod
	cartItems      map[string]checkout.CartItem
	vouchers       map[string]voucher.Voucher
	cancelReasons  map[string]cancellation.CancelReason
	products       map[string]productState
	items          map[string]inventory.ProductItem
	orders         map[string]order.ReconstructionDTO
}

func copyMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		users:          copyMap(s.users),
		addresses:      copyMap(s.addresses),
		paymentMethods: copyMap(s.paymentMethods),
		cartItems:      copyMap(s.cartItems),
		vouchers:       copyMap(s.vouchers),
		cancelReasons:  copyMap(s.cancelReasons),
		products:       copyMap(s.products),
		items:          copyMap(s.items),
		orders:         copyMap(s.orders),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.addresses = snap.addresses
	s.paymentMethods = snap.paymentMethods
	s.cartItems = snap.cartItems
	s.vouchers = snap.vouchers
	s.cancelReasons = snap.cancelReasons
	s.products = snap.products
	s.items = snap.items
	s.orders = snap.orders
}

// ============================================================================
// user.Repository
// ============================================================================

// UserRepository in-memory user read model
type UserRepository struct{ store *Store }

func NewUserRepository(store *Store) *UserRepository { return &UserRepository{store: store} }

func (r *UserRepository) FindByID(_ context.Context, id string) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, user.NewUserNotFoundError(id)
	}
	return &u, nil
}

var _ user.Repository = (*UserRepository)(nil)

// ============================================================================
// checkout repositories
// ============================================================================

// AddressRepository in-memory address read model
type AddressRepository struct{ store *Store }

func NewAddressRepository(store *Store) *AddressRepository { return &AddressRepository{store: store} }

func (r *AddressRepository) FindByID(_ context.Context, id string) (*checkout.Address, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	a, ok := r.store.addresses[id]
	if !ok {
		return nil, shared.NewNotFoundError("address")
	}
	return &a, nil
}

var _ checkout.AddressRepository = (*AddressRepository)(nil)

// PaymentMethodRepository in-memory payment method read model
type PaymentMethodRepository struct{ store *Store }

func NewPaymentMethodRepository(store *Store) *PaymentMethodRepository {
	return &PaymentMethodRepository{store: store}
}

func (r *PaymentMethodRepository) FindByID(_ context.Context, id string) (*checkout.PaymentMethod, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	pm, ok := r.store.paymentMethods[id]
	if !ok {
		return nil, shared.NewNotFoundError("payment method")
	}
	return &pm, nil
}

var _ checkout.PaymentMethodRepository = (*PaymentMethodRepository)(nil)

// CartRepository in-memory cart cleanup
type CartRepository struct{ store *Store }

func NewCartRepository(store *Store) *CartRepository { return &CartRepository{store: store} }

func (r *CartRepository) RemoveItems(_ context.Context, userID string, productItemIDs []string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	match := make(map[string]bool, len(productItemIDs))
	for _, id := range productItemIDs {
		match[id] = true
	}
	for key, ci := range r.store.cartItems {
		if ci.UserID == userID && match[ci.ProductItemID] {
			delete(r.store.cartItems, key)
		}
	}
	return nil
}

var _ checkout.CartRepository = (*CartRepository)(nil)

// ============================================================================
// inventory.Repository
// ============================================================================

// InventoryRepository in-memory stock ledger storage
type InventoryRepository struct{ store *Store }

func NewInventoryRepository(store *Store) *InventoryRepository {
	return &InventoryRepository{store: store}
}

func (r *InventoryRepository) FindItem(_ context.Context, id string) (*inventory.ProductItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	item, ok := r.store.items[id]
	if !ok {
		return nil, inventory.NewItemNotFoundError(id)
	}
	return &item, nil
}

// DecrementStock check-and-decrement under one lock, mirroring the
// conditional UPDATE of the SQL implementation.
func (r *InventoryRepository) DecrementStock(_ context.Context, id string, quantity int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	item, ok := r.store.items[id]
	if !ok {
		return inventory.NewItemNotFoundError(id)
	}
	if item.QuantityInStock < quantity {
		return inventory.NewInsufficientStockError(id, quantity)
	}
	item.QuantityInStock -= quantity
	r.store.items[id] = item
	return nil
}

func (r *InventoryRepository) IncrementStock(_ context.Context, id string, quantity int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	item, ok := r.store.items[id]
	if !ok {
		return inventory.NewItemNotFoundError(id)
	}
	item.QuantityInStock += quantity
	r.store.items[id] = item
	return nil
}

func (r *InventoryRepository) IncrementSoldCount(_ context.Context, productID string, quantity int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[productID]
	if !ok {
		return inventory.NewItemNotFoundError(productID)
	}
	p.SoldCount += quantity
	r.store.products[productID] = p
	return nil
}

var _ inventory.Repository = (*InventoryRepository)(nil)

// ============================================================================
// voucher.Repository
// ============================================================================

// VoucherRepository in-memory voucher storage
type VoucherRepository struct{ store *Store }

func NewVoucherRepository(store *Store) *VoucherRepository {
	return &VoucherRepository{store: store}
}

func (r *VoucherRepository) FindByID(_ context.Context, id string) (*voucher.Voucher, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	v, ok := r.store.vouchers[id]
	if !ok {
		return nil, voucher.NewVoucherNotFoundError(id)
	}
	return &v, nil
}

func (r *VoucherRepository) ConsumeUsage(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	v, ok := r.store.vouchers[id]
	if !ok {
		return voucher.NewVoucherNotFoundError(id)
	}
	if v.RemainingUsage <= 0 {
		return voucher.NewVoucherExhaustedError(id)
	}
	v.RemainingUsage--
	r.store.vouchers[id] = v
	return nil
}

var _ voucher.Repository = (*VoucherRepository)(nil)

// ============================================================================
// cancellation.Repository
// ============================================================================

// CancelReasonRepository in-memory cancel reason catalog
type CancelReasonRepository struct{ store *Store }

func NewCancelReasonRepository(store *Store) *CancelReasonRepository {
	return &CancelReasonRepository{store: store}
}

func (r *CancelReasonRepository) FindByID(_ context.Context, id string) (*cancellation.CancelReason, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	cr, ok := r.store.cancelReasons[id]
	if !ok {
		return nil, cancellation.NewReasonNotFoundError(id)
	}
	return &cr, nil
}

var _ cancellation.Repository = (*CancelReasonRepository)(nil)
