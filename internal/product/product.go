package product

import "github.com/shopspring/decimal"

// Product statuses mirror the catalog lifecycle; only published products
// are listed publicly.
const (
	StatusDraft     = "draft"
	StatusDisabled  = "disabled"
	StatusInReview  = "in_review"
	StatusPublished = "published"
)

// Product represents a catalog item. Monetary fields are exact decimals.
// VendorEmail is optional: products without a vendor contact simply skip
// the vendor notification at fulfillment time.
type Product struct {
	ID             int             `json:"productId"`
	PID            string          `json:"pid"`
	Title          string          `json:"title"`
	Slug           string          `json:"slug"`
	Description    *string         `json:"description,omitempty"`
	CategoryID     *int            `json:"categoryId,omitempty"`
	Price          decimal.Decimal `json:"price"`
	OldPrice       decimal.Decimal `json:"oldPrice"`
	ShippingAmount decimal.Decimal `json:"shippingAmount"`
	StockQty       int             `json:"stockQty"`
	InStock        bool            `json:"inStock"`
	Status         string          `json:"status"`
	Featured       bool            `json:"featured"`
	VendorEmail    *string         `json:"vendorEmail,omitempty"`
	CreatedAt      string          `json:"createdAt,omitempty"`
}
