package buyer

import (
	"errors"
	"sync"
)

var (
	ErrNotFound           = errors.New("buyer not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
)

// Repository provides access to buyer accounts.
type Repository interface {
	GetByID(id int) (Buyer, error)
	GetByEmail(email string) (Buyer, error)
	Create(b Buyer) (Buyer, error)
	UpdatePassword(id int, hashed string, updatedAt string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	buyers []Buyer
	nextID int
}

func NewInMemoryRepository(seed []Buyer) *InMemoryRepository {
	r := &InMemoryRepository{buyers: make([]Buyer, 0, len(seed)), nextID: 1}
	for _, b := range seed {
		r.buyers = append(r.buyers, b)
		if b.ID >= r.nextID {
			r.nextID = b.ID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) GetByID(id int) (Buyer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.buyers {
		if b.ID == id {
			return b, nil
		}
	}
	return Buyer{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (Buyer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.buyers {
		if b.Email == email {
			return b, nil
		}
	}
	return Buyer{}, ErrNotFound
}

func (r *InMemoryRepository) Create(b Buyer) (Buyer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == 0 {
		b.ID = r.nextID
		r.nextID++
	}
	r.buyers = append(r.buyers, b)
	return b, nil
}

func (r *InMemoryRepository) UpdatePassword(id int, hashed string, updatedAt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.buyers {
		if r.buyers[i].ID == id {
			r.buyers[i].Password = hashed
			if updatedAt != "" {
				r.buyers[i].UpdatedAt = updatedAt
			}
			return nil
		}
	}
	return ErrNotFound
}
