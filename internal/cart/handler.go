package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/ecomdev/storefront-backend/internal/buyer"
	"github.com/ecomdev/storefront-backend/internal/money"
	"github.com/ecomdev/storefront-backend/internal/product"
)

// Handler delegates cart operations to the cart service.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/cart", h.upsert)
	app.Get("/api/v1/cart/details/:cartId", h.details)
	app.Get("/api/v1/cart/:cartId", h.list)
	app.Delete("/api/v1/cart/:cartId/item/:itemId/delete", h.deleteItem)
}

type upsertRequest struct {
	ProductID      int    `json:"productId"`
	BuyerID        int    `json:"buyerId"`
	Quantity       int    `json:"quantity"`
	Price          string `json:"price"`
	ShippingAmount string `json:"shippingAmount"`
	Country        string `json:"country"`
	Size           string `json:"size"`
	Color          string `json:"color"`
	CartID         string `json:"cartId"`
}

// parseAmount normalizes a request amount to 2 fraction digits. An absent
// amount is zero.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return money.Zero, nil
	}
	return money.Parse(s)
}

func (h *Handler) upsert(c *fiber.Ctx) error {
	payload := new(upsertRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid numeric values."})
	}
	if payload.CartID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cartId is required"})
	}

	price, err := parseAmount(payload.Price)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid numeric values."})
	}
	shipping, err := parseAmount(payload.ShippingAmount)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid numeric values."})
	}

	line, created, err := h.service.Upsert(UpsertInput{
		CartID:         payload.CartID,
		ProductID:      payload.ProductID,
		BuyerID:        payload.BuyerID,
		Quantity:       payload.Quantity,
		Price:          price,
		ShippingAmount: shipping,
		Country:        payload.Country,
		Size:           payload.Size,
		Color:          payload.Color,
	})
	if err != nil {
		switch {
		case err == product.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		case err == buyer.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "buyer not found"})
		case IsValidationErr(err):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	if created {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Product added to cart successfully.",
			"data":    line,
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Cart updated successfully.",
		"data":    line,
	})
}

func (h *Handler) list(c *fiber.Ctx) error {
	lines, err := h.service.List(c.Params("cartId"), queryBuyerID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(lines)
}

func (h *Handler) details(c *fiber.Ctx) error {
	summary, err := h.service.Summarize(c.Params("cartId"), queryBuyerID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(summary)
}

func (h *Handler) deleteItem(c *fiber.Ctx) error {
	itemID, err := strconv.Atoi(c.Params("itemId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid item id"})
	}

	if err := h.service.Delete(c.Params("cartId"), itemID, queryBuyerID(c)); err != nil {
		if err == ErrLineNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "cart line not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}

func queryBuyerID(c *fiber.Ctx) int {
	if v := c.Query("buyerId"); v != "" {
		if id, err := strconv.Atoi(v); err == nil && id > 0 {
			return id
		}
	}
	return 0
}
