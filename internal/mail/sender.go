package mail

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/ecomdev/storefront-backend/internal/config"
	"github.com/ecomdev/storefront-backend/internal/order"
)

// Sender delivers order notifications. Implementations must be safe to call
// after payment confirmation; a delivery failure never blocks the caller.
type Sender interface {
	SendOrderPlaced(to string, ord order.Order, items []order.Item) error
	SendVendorOrderPlaced(to string, ord order.Order, item order.Item) error
}

type smtpSender struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

func NewSMTPSender(cfg config.SMTPConfig, logger *zap.Logger) Sender {
	return &smtpSender{cfg: cfg, logger: logger}
}

func (s *smtpSender) SendOrderPlaced(to string, ord order.Order, items []order.Item) error {
	rows := ""
	for _, it := range items {
		rows += fmt.Sprintf("<tr><td>%d x product #%d</td><td>%s</td></tr>", it.Quantity, it.ProductID, it.Total.StringFixed(2))
	}
	body := fmt.Sprintf(`
		<h1>Thank you for your order, %s!</h1>
		<p>Your order <b>%s</b> has been received and paid.</p>
		<table>%s</table>
		<p>Order total: <b>%s</b></p>
	`, ord.FullName, ord.OID, rows, ord.Total.StringFixed(2))

	return s.send(to, "Subject: Your order has been placed.\n", body)
}

func (s *smtpSender) SendVendorOrderPlaced(to string, ord order.Order, item order.Item) error {
	body := fmt.Sprintf(`
		<h1>You have a new sale!</h1>
		<p>Order <b>%s</b> includes %d x product #%d (%s).</p>
		<p>Please prepare the item for shipping.</p>
	`, ord.OID, item.Quantity, item.ProductID, item.Total.StringFixed(2))

	return s.send(to, "Subject: New order received.\n", body)
}

func (s *smtpSender) send(to string, subject string, body string) error {
	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	msg := []byte(subject + mime + body)
	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)

	s.logger.Info("sending order notification", zap.String("to", to))
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg); err != nil {
		s.logger.Error("error sending order notification", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("failed to send mail: %v", err)
	}
	return nil
}
