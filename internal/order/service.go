package order

import (
	"time"

	"github.com/ecomdev/storefront-backend/internal/buyer"
	"github.com/ecomdev/storefront-backend/internal/cart"
	"github.com/ecomdev/storefront-backend/internal/money"
	"github.com/ecomdev/storefront-backend/internal/product"
)

// ServiceInterface is the order surface the payment package depends on.
type ServiceInterface interface {
	GetByOID(oid string) (Order, error)
	ItemsByOrderID(orderID int) ([]Item, error)
	SetStripeSessionID(oid string, sessionID string) error
	MarkPaid(oid string) (bool, error)
}

// Service assembles orders from cart sessions.
type Service struct {
	repo     Repository
	carts    cart.ServiceInterface
	buyers   buyer.ServiceInterface
	products product.ServiceInterface
}

func NewService(repo Repository, carts cart.ServiceInterface, buyers buyer.ServiceInterface, products product.ServiceInterface) *Service {
	return &Service{repo: repo, carts: carts, buyers: buyers, products: products}
}

// Place converts every line of the cart session into an immutable order
// snapshot. The cart session, not the buyer, is authoritative here: lines
// are read without buyer scoping so guest carts with mixed lines assemble
// whole. A buyerID of 0 produces a guest order.
func (s *Service) Place(cartID string, buyerID int, info ShippingInfo) (Order, error) {
	if buyerID != 0 {
		if _, err := s.buyers.GetByID(buyerID); err != nil {
			return Order{}, err
		}
	}

	lines, err := s.carts.List(cartID, 0)
	if err != nil {
		return Order{}, err
	}
	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}

	now := time.Now().UTC().Format(time.RFC3339)

	ord := Order{
		OID:            NewOID(),
		PaymentStatus:  PaymentPending,
		OrderStatus:    StatusProcessing,
		SubTotal:       money.Zero,
		ShippingAmount: money.Zero,
		ServiceFee:     money.Zero,
		TaxFee:         money.Zero,
		Total:          money.Zero,
		InitialTotal:   money.Zero,
		Discount:       money.Zero,
		FullName:       info.FullName,
		Email:          info.Email,
		Phone:          info.Phone,
		Address:        info.Address,
		City:           info.City,
		State:          info.State,
		Country:        info.Country,
		Zipcode:        info.Zipcode,
		CreatedAt:      now,
	}
	if buyerID != 0 {
		ord.BuyerID = &buyerID
	}

	vendors := s.vendorEmails(lines)

	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		item := Item{
			OID:            NewOID(),
			ProductID:      l.ProductID,
			Quantity:       l.Quantity,
			Price:          l.Price,
			SubTotal:       l.SubTotal,
			ShippingAmount: l.ShippingAmount,
			ServiceFee:     l.ServiceFee,
			TaxFee:         l.TaxFee,
			Total:          l.Total,
			InitialTotal:   l.Total,
			Discount:       money.Zero,
			Size:           l.Size,
			Color:          l.Color,
			Country:        l.Country,
			VendorEmail:    vendors[l.ProductID],
			CreatedAt:      now,
		}
		items = append(items, item)

		ord.SubTotal = ord.SubTotal.Add(l.SubTotal)
		ord.ShippingAmount = ord.ShippingAmount.Add(l.ShippingAmount)
		ord.ServiceFee = ord.ServiceFee.Add(l.ServiceFee)
		ord.TaxFee = ord.TaxFee.Add(l.TaxFee)
		ord.InitialTotal = ord.InitialTotal.Add(l.Total)
		ord.Total = ord.Total.Add(l.Total)
	}

	return s.repo.PlaceOrder(ord, items, cartID)
}

// vendorEmails resolves the optional vendor contact per product. A lookup
// failure just means no vendor notifications for those items.
func (s *Service) vendorEmails(lines []cart.Line) map[int]*string {
	ids := make([]int, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	out := make(map[int]*string, len(ids))
	products, err := s.products.ListByIDs(ids)
	if err != nil {
		return out
	}
	for _, p := range products {
		out[p.ID] = p.VendorEmail
	}
	return out
}

func (s *Service) GetByOID(oid string) (Order, error) {
	return s.repo.GetByOID(oid)
}

func (s *Service) ItemsByOrderID(orderID int) ([]Item, error) {
	return s.repo.ItemsByOrderID(orderID)
}

func (s *Service) SetStripeSessionID(oid string, sessionID string) error {
	return s.repo.SetStripeSessionID(oid, sessionID)
}

func (s *Service) MarkPaid(oid string) (bool, error) {
	return s.repo.MarkPaid(oid)
}
