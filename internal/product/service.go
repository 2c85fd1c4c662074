package product

// ServiceInterface is the catalog surface other packages depend on.
type ServiceInterface interface {
	GetByID(id int) (Product, error)
	ListByIDs(ids []int) ([]Product, error)
	DecrementStock(id int, qty int) (bool, error)
}

// Service provides catalog logic for products.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Product, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Product, error) {
	if id <= 0 {
		return Product{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

func (s *Service) GetBySlug(slug string) (Product, error) {
	if slug == "" {
		return Product{}, ErrNotFound
	}
	return s.repo.GetBySlug(slug)
}

func (s *Service) ListByIDs(ids []int) ([]Product, error) {
	return s.repo.ListByIDs(ids)
}

// DecrementStock reduces stock for a fulfilled order item. Insufficient
// stock is reported via the bool, not as an error.
func (s *Service) DecrementStock(id int, qty int) (bool, error) {
	if id <= 0 || qty <= 0 {
		return false, nil
	}
	return s.repo.DecrementStock(id, qty)
}
