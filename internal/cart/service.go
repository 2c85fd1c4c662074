package cart

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecomdev/storefront-backend/internal/buyer"
	"github.com/ecomdev/storefront-backend/internal/money"
	"github.com/ecomdev/storefront-backend/internal/product"
)

// Validation errors surface as 400 responses with their message.
var (
	ErrInvalidQuantity  = errors.New("Quantity must be greater than 0.")
	ErrInvalidPrice     = errors.New("Price must be greater than 0.")
	ErrInvalidShipping  = errors.New("Shipping amount cannot be negative.")
	ErrSizeColorMissing = errors.New("Size and color must be selected.")
)

// IsValidationErr reports whether err is one of the upsert validation
// failures (as opposed to a missing product/buyer or a storage error).
func IsValidationErr(err error) bool {
	return errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidShipping) ||
		errors.Is(err, ErrSizeColorMissing)
}

// ServiceInterface is the cart surface the order assembler depends on.
type ServiceInterface interface {
	List(cartID string, buyerID int) ([]Line, error)
}

// UpsertInput carries the client-supplied values for one add-to-cart call.
// Price and ShippingAmount are unit values; the service derives the line
// totals.
type UpsertInput struct {
	CartID         string
	ProductID      int
	BuyerID        int
	Quantity       int
	Price          decimal.Decimal
	ShippingAmount decimal.Decimal
	Country        string
	Size           string
	Color          string
}

// Service orchestrates cart operations.
type Service struct {
	repo     Repository
	products product.ServiceInterface
	buyers   buyer.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface, buyers buyer.ServiceInterface) *Service {
	return &Service{repo: repo, products: products, buyers: buyers}
}

// Upsert creates or overwrites the line keyed by (cartID, productID,
// buyerID). The bool reports whether a new line was created.
func (s *Service) Upsert(in UpsertInput) (Line, bool, error) {
	if _, err := s.products.GetByID(in.ProductID); err != nil {
		return Line{}, false, err
	}
	if _, err := s.buyers.GetByID(in.BuyerID); err != nil {
		return Line{}, false, err
	}

	if in.Quantity <= 0 {
		return Line{}, false, ErrInvalidQuantity
	}
	if !in.Price.IsPositive() {
		return Line{}, false, ErrInvalidPrice
	}
	if in.ShippingAmount.IsNegative() {
		return Line{}, false, ErrInvalidShipping
	}
	if in.Size == "" || in.Color == "" {
		return Line{}, false, ErrSizeColorMissing
	}

	qty := decimal.NewFromInt(int64(in.Quantity))
	subTotal := money.Round(in.Price.Mul(qty))
	shipping := money.Round(in.ShippingAmount.Mul(qty))
	// placeholders for future pricing rules
	serviceFee := money.Zero
	taxFee := money.Zero
	total := money.Sum(subTotal, shipping, serviceFee, taxFee)

	line := Line{
		CartID:         in.CartID,
		ProductID:      in.ProductID,
		BuyerID:        in.BuyerID,
		Quantity:       in.Quantity,
		Price:          money.Round(in.Price),
		SubTotal:       subTotal,
		ShippingAmount: shipping,
		ServiceFee:     serviceFee,
		TaxFee:         taxFee,
		Total:          total,
		Country:        in.Country,
		Size:           in.Size,
		Color:          in.Color,
	}

	existing, err := s.repo.FindByKey(in.CartID, in.ProductID, in.BuyerID)
	switch {
	case err == nil:
		line.ID = existing.ID
		line.CreatedAt = existing.CreatedAt
		updated, err := s.repo.Update(line)
		return updated, false, err
	case errors.Is(err, ErrLineNotFound):
		line.CreatedAt = time.Now().UTC().Format(time.RFC3339)
		created, err := s.repo.Insert(line)
		return created, true, err
	default:
		return Line{}, false, err
	}
}

// List returns the lines of a cart session, optionally scoped to a buyer
// (buyerID 0 means all lines).
func (s *Service) List(cartID string, buyerID int) ([]Line, error) {
	return s.repo.ListByCartID(cartID, buyerID)
}

// Summarize sums the monetary fields of the matching lines. An empty cart
// yields an all-zero summary, not an error.
func (s *Service) Summarize(cartID string, buyerID int) (Summary, error) {
	lines, err := s.repo.ListByCartID(cartID, buyerID)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		Shipping:   money.Zero,
		Tax:        money.Zero,
		ServiceFee: money.Zero,
		SubTotal:   money.Zero,
		Total:      money.Zero,
	}
	for _, l := range lines {
		sum.Shipping = sum.Shipping.Add(l.ShippingAmount)
		sum.Tax = sum.Tax.Add(l.TaxFee)
		sum.ServiceFee = sum.ServiceFee.Add(l.ServiceFee)
		sum.SubTotal = sum.SubTotal.Add(l.SubTotal)
		sum.Total = sum.Total.Add(l.Total)
	}
	return sum, nil
}

// Delete removes a single line from a cart session.
func (s *Service) Delete(cartID string, lineID, buyerID int) error {
	return s.repo.Delete(cartID, lineID, buyerID)
}
