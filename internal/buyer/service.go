package buyer

import "golang.org/x/crypto/bcrypt"

// ServiceInterface is implemented by Service and consumed by other packages
// that only need buyer lookups.
type ServiceInterface interface {
	GetByID(id int) (Buyer, error)
}

// Service provides account logic on top of the repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (Buyer, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Register(b Buyer) (Buyer, error) {
	if _, err := s.repo.GetByEmail(b.Email); err == nil {
		return Buyer{}, ErrEmailExists
	} else if err != ErrNotFound {
		return Buyer{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(b.Password), bcrypt.DefaultCost)
	if err != nil {
		return Buyer{}, err
	}

	b.Password = string(hashed)
	return s.repo.Create(b)
}

func (s *Service) Authenticate(email, password string) (Buyer, error) {
	b, err := s.repo.GetByEmail(email)
	if err != nil {
		return Buyer{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(b.Password), []byte(password)) != nil {
		return Buyer{}, ErrInvalidCredentials
	}

	return b, nil
}

// ChangePassword verifies the old password and stores a new hash.
func (s *Service) ChangePassword(id int, oldPassword, newPassword, updatedAt string) error {
	b, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(b.Password), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(id, string(hashed), updatedAt)
}
