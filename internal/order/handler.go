package order

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecomdev/storefront-backend/internal/buyer"
)

// Handler delegates order assembly to the order service.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/order", h.placeOrder)
}

type placeOrderRequest struct {
	CartID   string `json:"cartId"`
	BuyerID  int    `json:"buyerId"`
	Address  string `json:"address"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Country  string `json:"country"`
	State    string `json:"state"`
	City     string `json:"city"`
	Pincode  string `json:"pincode"`
}

func (h *Handler) placeOrder(c *fiber.Ctx) error {
	payload := new(placeOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.CartID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cartId is required"})
	}

	ord, err := h.service.Place(payload.CartID, payload.BuyerID, ShippingInfo{
		FullName: payload.FullName,
		Email:    payload.Email,
		Phone:    payload.Phone,
		Address:  payload.Address,
		City:     payload.City,
		State:    payload.State,
		Country:  payload.Country,
		Zipcode:  payload.Pincode,
	})
	if err != nil {
		switch err {
		case buyer.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "buyer not found"})
		case ErrEmptyCart:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	// guest orders do not disclose the order id in the response
	if payload.BuyerID != 0 {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":   "Order Placed Successfully.",
			"order_oid": ord.OID,
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Order Placed Successfully."})
}
