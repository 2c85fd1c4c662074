package payment

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ecomdev/storefront-backend/internal/config"
	"github.com/ecomdev/storefront-backend/internal/mail"
	"github.com/ecomdev/storefront-backend/internal/money"
	"github.com/ecomdev/storefront-backend/internal/order"
	"github.com/ecomdev/storefront-backend/internal/product"
)

// ErrInvalidSession is returned when a confirmation carries no usable
// checkout session reference.
var ErrInvalidSession = errors.New("invalid checkout session")

// Confirmation outcomes. Exactly one is returned per successful
// ConfirmPayment call and is safe to show to the buyer.
const (
	OutcomePaid        = "Payment Successful."
	OutcomeAlreadyPaid = "Already Paid."
	OutcomePending     = "Your invoice is unpaid."
	OutcomeCancelled   = "Payment was cancelled."
	OutcomeFailed      = "Payment failed, try again later."
)

// Service opens checkout sessions and reconciles their outcome against the
// order ledger.
type Service struct {
	orders   order.ServiceInterface
	products product.ServiceInterface
	gateway  Gateway
	mailer   mail.Sender
	cfg      config.StripeConfig
	logger   *zap.Logger
}

func NewService(orders order.ServiceInterface, products product.ServiceInterface, gateway Gateway, mailer mail.Sender, cfg config.StripeConfig, logger *zap.Logger) *Service {
	return &Service{orders: orders, products: products, gateway: gateway, mailer: mailer, cfg: cfg, logger: logger}
}

// OpenCheckout creates a hosted checkout session for the order and records
// the session id on the order only after the gateway accepted it. Returns
// the URL the buyer should be redirected to.
func (s *Service) OpenCheckout(oid string) (string, error) {
	ord, err := s.orders.GetByOID(oid)
	if err != nil {
		return "", err
	}

	sess, err := s.gateway.CreateSession(SessionParams{
		CustomerEmail: ord.Email,
		Description:   ord.FullName,
		AmountMinor:   money.MinorUnits(ord.Total),
		SuccessURL:    fmt.Sprintf("%s/%s?session_id={CHECKOUT_SESSION_ID}", s.cfg.SuccessURL, ord.OID),
		CancelURL:     s.cfg.CancelURL,
	})
	if err != nil {
		return "", err
	}

	if err := s.orders.SetStripeSessionID(ord.OID, sess.ID); err != nil {
		return "", err
	}
	return sess.URL, nil
}

// ConfirmPayment resolves the gateway session and settles the order. The
// Paid transition is claimed exactly once; fulfillment side effects (stock
// decrement, notifications) run only for the claiming call and are
// best-effort.
func (s *Service) ConfirmPayment(oid string, sessionID string) (string, error) {
	if sessionID == "" || sessionID == "null" {
		return "", ErrInvalidSession
	}

	ord, err := s.orders.GetByOID(oid)
	if err != nil {
		return "", err
	}

	sess, err := s.gateway.RetrieveSession(sessionID)
	if err != nil {
		return "", err
	}

	switch sess.PaymentStatus {
	case "paid":
		claimed, err := s.orders.MarkPaid(ord.OID)
		if err != nil {
			return "", err
		}
		if !claimed {
			return OutcomeAlreadyPaid, nil
		}
		s.fulfill(ord)
		return OutcomePaid, nil
	case "pending":
		return OutcomePending, nil
	case "canceled", "cancelled":
		return OutcomeCancelled, nil
	default:
		// unpaid and any other unrecognized status
		return OutcomeFailed, nil
	}
}

// fulfill runs the post-payment side effects. Failures here are logged and
// never undo the recorded payment.
func (s *Service) fulfill(ord order.Order) {
	items, err := s.orders.ItemsByOrderID(ord.ID)
	if err != nil {
		s.logger.Error("loading items for fulfillment", zap.String("oid", ord.OID), zap.Error(err))
		return
	}

	for _, it := range items {
		applied, err := s.products.DecrementStock(it.ProductID, it.Quantity)
		if err != nil {
			s.logger.Error("stock decrement", zap.Int("product_id", it.ProductID), zap.Error(err))
			continue
		}
		if !applied {
			s.logger.Warn("stock decrement skipped, insufficient stock",
				zap.Int("product_id", it.ProductID), zap.Int("qty", it.Quantity))
		}
	}

	if err := s.mailer.SendOrderPlaced(ord.Email, ord, items); err != nil {
		s.logger.Error("buyer notification", zap.String("oid", ord.OID), zap.Error(err))
	}
	for _, it := range items {
		if it.VendorEmail == nil {
			continue
		}
		if err := s.mailer.SendVendorOrderPlaced(*it.VendorEmail, ord, it); err != nil {
			s.logger.Error("vendor notification", zap.String("oid", ord.OID), zap.Error(err))
		}
	}
}
