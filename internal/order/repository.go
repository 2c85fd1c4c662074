package order

import (
	"errors"
	"sync"
)

var (
	ErrNotFound  = errors.New("order not found")
	ErrEmptyCart = errors.New("cart is empty")
)

// Repository defines persistence operations for orders.
//
// PlaceOrder commits the order header, its items and the deletion of the
// source cart lines as one atomic unit: a failure anywhere must leave no
// partial artifacts behind.
type Repository interface {
	PlaceOrder(ord Order, items []Item, cartID string) (Order, error)
	GetByOID(oid string) (Order, error)
	ItemsByOrderID(orderID int) ([]Item, error)
	SetStripeSessionID(oid string, sessionID string) error
	// MarkPaid flips payment status to Paid only when it is not Paid yet.
	// The bool reports whether this call claimed the transition.
	MarkPaid(oid string) (bool, error)
}

// CartClearer is the slice of the cart store the in-memory repository needs
// to mirror the transactional cart cleanup.
type CartClearer interface {
	DeleteByCartID(cartID string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.Mutex
	orders []Order
	items  []Item
	nextID int
	carts  CartClearer
}

func NewInMemoryRepository(carts CartClearer) *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, carts: carts}
}

func (r *InMemoryRepository) PlaceOrder(ord Order, items []Item, cartID string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord.ID = r.nextID
	r.nextID++
	for i := range items {
		items[i].ID = r.nextID
		r.nextID++
		items[i].OrderID = ord.ID
	}
	r.orders = append(r.orders, ord)
	r.items = append(r.items, items...)

	if r.carts != nil {
		if err := r.carts.DeleteByCartID(cartID); err != nil {
			return Order{}, err
		}
	}

	ord.Items = items
	return ord, nil
}

func (r *InMemoryRepository) GetByOID(oid string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OID == oid {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ItemsByOrderID(orderID int) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Item, 0)
	for _, it := range r.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) SetStripeSessionID(oid string, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].OID == oid {
			sid := sessionID
			r.orders[i].StripeSessionID = &sid
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) MarkPaid(oid string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].OID == oid {
			if r.orders[i].PaymentStatus == PaymentPaid {
				return false, nil
			}
			r.orders[i].PaymentStatus = PaymentPaid
			return true, nil
		}
	}
	return false, ErrNotFound
}
