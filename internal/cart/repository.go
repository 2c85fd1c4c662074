package cart

import (
	"errors"
	"sync"
)

var (
	ErrLineNotFound = errors.New("cart line not found")
)

// Repository provides access to cart lines. A buyerID of 0 means
// "no buyer scoping" for the read and delete operations.
type Repository interface {
	FindByKey(cartID string, productID, buyerID int) (Line, error)
	Insert(l Line) (Line, error)
	Update(l Line) (Line, error)
	ListByCartID(cartID string, buyerID int) ([]Line, error)
	Delete(cartID string, lineID, buyerID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	lines  []Line
	nextID int
}

func NewInMemoryRepository(seed []Line) *InMemoryRepository {
	r := &InMemoryRepository{lines: make([]Line, 0, len(seed)), nextID: 1}
	for _, l := range seed {
		r.lines = append(r.lines, l)
		if l.ID >= r.nextID {
			r.nextID = l.ID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) FindByKey(cartID string, productID, buyerID int) (Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.lines {
		if l.CartID == cartID && l.ProductID == productID && l.BuyerID == buyerID {
			return l, nil
		}
	}
	return Line{}, ErrLineNotFound
}

func (r *InMemoryRepository) Insert(l Line) (Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.ID == 0 {
		l.ID = r.nextID
		r.nextID++
	}
	r.lines = append(r.lines, l)
	return l, nil
}

func (r *InMemoryRepository) Update(l Line) (Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.lines {
		if r.lines[i].ID == l.ID {
			r.lines[i] = l
			return l, nil
		}
	}
	return Line{}, ErrLineNotFound
}

func (r *InMemoryRepository) ListByCartID(cartID string, buyerID int) ([]Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Line, 0)
	for _, l := range r.lines {
		if l.CartID != cartID {
			continue
		}
		if buyerID != 0 && l.BuyerID != buyerID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *InMemoryRepository) Delete(cartID string, lineID, buyerID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.lines {
		if l.CartID != cartID || l.ID != lineID {
			continue
		}
		if buyerID != 0 && l.BuyerID != buyerID {
			continue
		}
		r.lines = append(r.lines[:i], r.lines[i+1:]...)
		return nil
	}
	return ErrLineNotFound
}

// DeleteByCartID removes every line of a cart session. The order assembler
// relies on this when an in-memory order repository commits a placed order.
func (r *InMemoryRepository) DeleteByCartID(cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.lines[:0]
	for _, l := range r.lines {
		if l.CartID != cartID {
			kept = append(kept, l)
		}
	}
	r.lines = kept
	return nil
}
