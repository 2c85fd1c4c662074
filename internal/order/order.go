package order

import "github.com/shopspring/decimal"

// Payment status reflects money received; order status reflects fulfillment
// progress. The two move independently.
const (
	PaymentPending    = "Pending"
	PaymentProcessing = "Processing"
	PaymentPaid       = "Paid"
	PaymentCancelled  = "Cancelled"

	StatusProcessing = "Processing"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

// Order is the immutable snapshot assembled from a cart session. Aggregate
// totals equal the sum of the item totals at creation time and are never
// recomputed; the payment reconciler only ever flips PaymentStatus.
// BuyerID is nil for guest checkouts.
type Order struct {
	ID      int    `json:"orderId"`
	OID     string `json:"oid"`
	BuyerID *int   `json:"buyerId,omitempty"`

	SubTotal       decimal.Decimal `json:"subTotal"`
	ShippingAmount decimal.Decimal `json:"shippingAmount"`
	ServiceFee     decimal.Decimal `json:"serviceFee"`
	TaxFee         decimal.Decimal `json:"taxFee"`
	Total          decimal.Decimal `json:"total"`
	InitialTotal   decimal.Decimal `json:"initialTotal"`
	Discount       decimal.Decimal `json:"discount"`

	PaymentStatus string `json:"paymentStatus"`
	OrderStatus   string `json:"orderStatus"`

	// shipping/contact fields captured at checkout time
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Zipcode  string `json:"zipcode"`

	StripeSessionID *string `json:"stripeSessionId,omitempty"`
	CreatedAt       string  `json:"createdAt,omitempty"`

	Items []Item `json:"items,omitempty"`
}

// Item is one order line captured from a cart line at assembly time.
// InitialTotal keeps the pre-discount value for future discount logic.
// VendorEmail is denormalized from the product; nil means no vendor
// notification for this item.
type Item struct {
	ID        int    `json:"itemId"`
	OID       string `json:"oid"`
	OrderID   int    `json:"orderId"`
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`

	Price          decimal.Decimal `json:"price"`
	SubTotal       decimal.Decimal `json:"subTotal"`
	ShippingAmount decimal.Decimal `json:"shippingAmount"`
	ServiceFee     decimal.Decimal `json:"serviceFee"`
	TaxFee         decimal.Decimal `json:"taxFee"`
	Total          decimal.Decimal `json:"total"`
	InitialTotal   decimal.Decimal `json:"initialTotal"`
	Discount       decimal.Decimal `json:"discount"`

	Size        string  `json:"size"`
	Color       string  `json:"color"`
	Country     string  `json:"country,omitempty"`
	VendorEmail *string `json:"vendorEmail,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

// ShippingInfo carries the checkout form fields for one placed order.
type ShippingInfo struct {
	FullName string
	Email    string
	Phone    string
	Address  string
	City     string
	State    string
	Country  string
	Zipcode  string
}
