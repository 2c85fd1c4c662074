package order

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ecomdev/storefront-backend/internal/buyer"
	"github.com/ecomdev/storefront-backend/internal/cart"
	"github.com/ecomdev/storefront-backend/internal/product"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	orders   *Service
	carts    *cart.Service
	cartRepo *cart.InMemoryRepository
	repo     *InMemoryRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	vendor := "vendor@example.com"
	products := product.NewService(product.NewInMemoryRepository([]product.Product{
		{ID: 1, Title: "Shirt", Slug: "shirt", Price: dec("10.00"), StockQty: 5, InStock: true, Status: product.StatusPublished, VendorEmail: &vendor},
		{ID: 2, Title: "Mug", Slug: "mug", Price: dec("5.00"), StockQty: 5, InStock: true, Status: product.StatusPublished},
	}))
	buyers := buyer.NewService(buyer.NewInMemoryRepository([]buyer.Buyer{
		{ID: 9, Email: "jo@example.com", FullName: "Jo Doe"},
	}))
	cartRepo := cart.NewInMemoryRepository(nil)
	carts := cart.NewService(cartRepo, products, buyers)
	repo := NewInMemoryRepository(cartRepo)
	return fixture{
		orders:   NewService(repo, carts, buyers, products),
		carts:    carts,
		cartRepo: cartRepo,
		repo:     repo,
	}
}

func seedCart(t *testing.T, f fixture) {
	t.Helper()
	for _, in := range []cart.UpsertInput{
		{CartID: "S1", ProductID: 1, BuyerID: 9, Quantity: 2, Price: dec("10.00"), ShippingAmount: dec("1.00"), Size: "M", Color: "red"},
		{CartID: "S1", ProductID: 2, BuyerID: 9, Quantity: 1, Price: dec("5.00"), ShippingAmount: dec("0.50"), Size: "one-size", Color: "white"},
	} {
		if _, _, err := f.carts.Upsert(in); err != nil {
			t.Fatalf("seed cart: %v", err)
		}
	}
}

func TestPlaceAggregatesTotalsAndClearsCart(t *testing.T) {
	f := newFixture(t)
	seedCart(t, f)

	ord, err := f.orders.Place("S1", 9, ShippingInfo{FullName: "Jo Doe", Email: "jo@example.com"})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if len(ord.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(ord.Items))
	}
	if !ord.SubTotal.Equal(dec("25.00")) {
		t.Fatalf("expected subTotal 25.00, got %s", ord.SubTotal)
	}
	if !ord.ShippingAmount.Equal(dec("2.50")) {
		t.Fatalf("expected shipping 2.50, got %s", ord.ShippingAmount)
	}
	if !ord.Total.Equal(dec("27.50")) {
		t.Fatalf("expected total 27.50, got %s", ord.Total)
	}
	if !ord.InitialTotal.Equal(ord.Total) {
		t.Fatalf("initialTotal should capture the pre-discount total")
	}
	if ord.PaymentStatus != PaymentPending || ord.OrderStatus != StatusProcessing {
		t.Fatalf("unexpected statuses: %s / %s", ord.PaymentStatus, ord.OrderStatus)
	}
	if len(ord.OID) != 10 {
		t.Fatalf("expected a 10-char public id, got %q", ord.OID)
	}
	if ord.BuyerID == nil || *ord.BuyerID != 9 {
		t.Fatalf("expected buyer 9, got %v", ord.BuyerID)
	}

	// items copy the line fields verbatim and capture initial_total
	for _, it := range ord.Items {
		want := it.SubTotal.Add(it.ShippingAmount).Add(it.ServiceFee).Add(it.TaxFee)
		if !it.Total.Equal(want) {
			t.Fatalf("item total %s != components sum %s", it.Total, want)
		}
		if !it.InitialTotal.Equal(it.Total) {
			t.Fatalf("item initialTotal should equal total at assembly time")
		}
	}

	// vendor contact is carried only where the product has one
	if ord.Items[0].VendorEmail == nil || *ord.Items[0].VendorEmail != "vendor@example.com" {
		t.Fatalf("expected vendor email on first item")
	}
	if ord.Items[1].VendorEmail != nil {
		t.Fatalf("expected no vendor email on second item")
	}

	// the cart session is empty after assembly
	lines, err := f.carts.List("S1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart after place, got %d lines", len(lines))
	}
}

func TestPlaceGuestOrder(t *testing.T) {
	f := newFixture(t)
	seedCart(t, f)

	ord, err := f.orders.Place("S1", 0, ShippingInfo{FullName: "Guest", Email: "guest@example.com"})
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if ord.BuyerID != nil {
		t.Fatalf("guest order must have no buyer reference")
	}

	// guest orders stay addressable by public id alone
	got, err := f.orders.GetByOID(ord.OID)
	if err != nil {
		t.Fatalf("get by oid: %v", err)
	}
	if got.ID != ord.ID {
		t.Fatalf("lookup mismatch")
	}
}

func TestPlaceRejectsEmptyCartAndUnknownBuyer(t *testing.T) {
	f := newFixture(t)

	if _, err := f.orders.Place("S1", 9, ShippingInfo{}); err != ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if _, err := f.orders.Place("S1", 404, ShippingInfo{}); err != buyer.ErrNotFound {
		t.Fatalf("expected buyer.ErrNotFound, got %v", err)
	}
}

type failingRepo struct{ Repository }

func (failingRepo) PlaceOrder(Order, []Item, string) (Order, error) {
	return Order{}, errors.New("storage down")
}

func TestPlaceFailureLeavesCartIntact(t *testing.T) {
	f := newFixture(t)
	seedCart(t, f)

	svc := NewService(failingRepo{f.repo},
		f.carts,
		buyer.NewService(buyer.NewInMemoryRepository([]buyer.Buyer{{ID: 9}})),
		product.NewService(product.NewInMemoryRepository(nil)))

	if _, err := svc.Place("S1", 9, ShippingInfo{}); err == nil {
		t.Fatalf("expected failure from the repository")
	}

	lines, err := f.carts.List("S1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("failed place must leave the cart untouched, got %d lines", len(lines))
	}
	if _, err := f.repo.GetByOID("anything"); err != ErrNotFound {
		t.Fatalf("no order should exist after the failure")
	}
}
