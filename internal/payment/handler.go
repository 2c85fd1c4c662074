package payment

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecomdev/storefront-backend/internal/order"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout/:orderOid", h.checkout)
	app.Post("/api/v1/payment-success", h.paymentSuccess)
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	oid := c.Params("orderOid")

	url, err := h.service.OpenCheckout(oid)
	if err != nil {
		if err == order.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Redirect(url, fiber.StatusFound)
}

type paymentSuccessRequest struct {
	OrderOID  string `json:"order_oid"`
	SessionID string `json:"session_id"`
}

func (h *Handler) paymentSuccess(c *fiber.Ctx) error {
	payload := new(paymentSuccessRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	outcome, err := h.service.ConfirmPayment(payload.OrderOID, payload.SessionID)
	if err != nil {
		switch err {
		case ErrInvalidSession:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "session id is required"})
		case order.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": outcome})
}
