package cart

import "github.com/shopspring/decimal"

// Line is one product entry in a cart session. A session may hold lines
// for several buyers; the (cartID, productID, buyerID) combination is the
// upsert key, so repeated add-to-cart calls overwrite instead of duplicate.
//
// ShippingAmount is the line shipping (unit shipping x quantity), matching
// how SubTotal relates to Price. Total is always the sum of SubTotal,
// ShippingAmount, ServiceFee and TaxFee; it is never stored independently.
type Line struct {
	ID             int             `json:"lineId"`
	CartID         string          `json:"cartId"`
	ProductID      int             `json:"productId"`
	BuyerID        int             `json:"buyerId"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	SubTotal       decimal.Decimal `json:"subTotal"`
	ShippingAmount decimal.Decimal `json:"shippingAmount"`
	ServiceFee     decimal.Decimal `json:"serviceFee"`
	TaxFee         decimal.Decimal `json:"taxFee"`
	Total          decimal.Decimal `json:"total"`
	Country        string          `json:"country,omitempty"`
	Size           string          `json:"size"`
	Color          string          `json:"color"`
	CreatedAt      string          `json:"createdAt,omitempty"`
}

// Summary aggregates the monetary totals of a cart session.
type Summary struct {
	Shipping   decimal.Decimal `json:"shipping"`
	Tax        decimal.Decimal `json:"tax"`
	ServiceFee decimal.Decimal `json:"serviceFee"`
	SubTotal   decimal.Decimal `json:"subTotal"`
	Total      decimal.Decimal `json:"total"`
}
