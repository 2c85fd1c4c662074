package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ecomdev/storefront-backend/internal/buyer"
	"github.com/ecomdev/storefront-backend/internal/product"
)

func newTestService(t *testing.T) (*Service, *InMemoryRepository) {
	t.Helper()
	products := product.NewService(product.NewInMemoryRepository([]product.Product{
		{ID: 1, Title: "Shirt", Slug: "shirt", Price: decimal.NewFromInt(10), StockQty: 5, InStock: true, Status: product.StatusPublished},
		{ID: 2, Title: "Mug", Slug: "mug", Price: decimal.NewFromInt(5), StockQty: 5, InStock: true, Status: product.StatusPublished},
	}))
	buyers := buyer.NewService(buyer.NewInMemoryRepository([]buyer.Buyer{
		{ID: 9, Email: "b@example.com", FullName: "B"},
	}))
	repo := NewInMemoryRepository(nil)
	return NewService(repo, products, buyers), repo
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestUpsertOverwritesOnSameKey(t *testing.T) {
	svc, _ := newTestService(t)

	first, created, err := svc.Upsert(UpsertInput{
		CartID: "S1", ProductID: 1, BuyerID: 9, Quantity: 2,
		Price: dec("10.00"), ShippingAmount: dec("1.00"), Size: "M", Color: "red",
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if !created {
		t.Fatalf("first upsert should create a line")
	}

	second, created, err := svc.Upsert(UpsertInput{
		CartID: "S1", ProductID: 1, BuyerID: 9, Quantity: 3,
		Price: dec("9.50"), ShippingAmount: dec("1.00"), Size: "L", Color: "blue",
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if created {
		t.Fatalf("second upsert with the same key should overwrite, not create")
	}
	if second.ID != first.ID {
		t.Fatalf("expected same line id, got %d and %d", first.ID, second.ID)
	}

	lines, err := svc.List("S1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line after repeat add, got %d", len(lines))
	}
	l := lines[0]
	if l.Quantity != 3 || l.Size != "L" || l.Color != "blue" {
		t.Fatalf("line does not reflect the latest call: %+v", l)
	}
	if !l.SubTotal.Equal(dec("28.50")) {
		t.Fatalf("expected subTotal 28.50, got %s", l.SubTotal)
	}
}

func TestUpsertValidation(t *testing.T) {
	svc, _ := newTestService(t)

	base := UpsertInput{
		CartID: "S1", ProductID: 1, BuyerID: 9, Quantity: 1,
		Price: dec("10.00"), ShippingAmount: dec("0.00"), Size: "M", Color: "red",
	}

	cases := []struct {
		name   string
		mutate func(*UpsertInput)
		want   error
	}{
		{"zero quantity", func(in *UpsertInput) { in.Quantity = 0 }, ErrInvalidQuantity},
		{"zero price", func(in *UpsertInput) { in.Price = decimal.Zero }, ErrInvalidPrice},
		{"negative shipping", func(in *UpsertInput) { in.ShippingAmount = dec("-1") }, ErrInvalidShipping},
		{"missing size", func(in *UpsertInput) { in.Size = "" }, ErrSizeColorMissing},
		{"missing color", func(in *UpsertInput) { in.Color = "" }, ErrSizeColorMissing},
	}
	for _, tc := range cases {
		in := base
		tc.mutate(&in)
		if _, _, err := svc.Upsert(in); err != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		if !IsValidationErr(tc.want) {
			t.Fatalf("%s: %v should classify as a validation error", tc.name, tc.want)
		}
	}

	// unknown product and unknown buyer are NotFound, not validation
	in := base
	in.ProductID = 999
	if _, _, err := svc.Upsert(in); err != product.ErrNotFound {
		t.Fatalf("expected product.ErrNotFound, got %v", err)
	}
	in = base
	in.BuyerID = 999
	if _, _, err := svc.Upsert(in); err != buyer.ErrNotFound {
		t.Fatalf("expected buyer.ErrNotFound, got %v", err)
	}
}

func TestLineTotalInvariant(t *testing.T) {
	svc, _ := newTestService(t)

	line, _, err := svc.Upsert(UpsertInput{
		CartID: "S1", ProductID: 1, BuyerID: 9, Quantity: 3,
		Price: dec("19.99"), ShippingAmount: dec("0.33"), Size: "M", Color: "red",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	want := line.SubTotal.Add(line.ShippingAmount).Add(line.ServiceFee).Add(line.TaxFee)
	if !line.Total.Equal(want) {
		t.Fatalf("total %s != components sum %s", line.Total, want)
	}
	if !line.SubTotal.Equal(dec("59.97")) {
		t.Fatalf("expected exact subTotal 59.97, got %s", line.SubTotal)
	}
	if !line.ShippingAmount.Equal(dec("0.99")) {
		t.Fatalf("expected exact shipping 0.99, got %s", line.ShippingAmount)
	}
}

func TestSummarize(t *testing.T) {
	svc, _ := newTestService(t)

	// empty cart: all zero, no error
	sum, err := svc.Summarize("S1", 0)
	if err != nil {
		t.Fatalf("summary of empty cart: %v", err)
	}
	if !sum.Total.IsZero() || !sum.SubTotal.IsZero() {
		t.Fatalf("expected zero summary for empty cart, got %+v", sum)
	}

	mustUpsert(t, svc, UpsertInput{
		CartID: "S1", ProductID: 1, BuyerID: 9, Quantity: 2,
		Price: dec("10.00"), ShippingAmount: dec("1.00"), Size: "M", Color: "red",
	})
	mustUpsert(t, svc, UpsertInput{
		CartID: "S1", ProductID: 2, BuyerID: 9, Quantity: 1,
		Price: dec("5.00"), ShippingAmount: dec("0.50"), Size: "one-size", Color: "white",
	})

	sum, err = svc.Summarize("S1", 0)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !sum.SubTotal.Equal(dec("25.00")) {
		t.Fatalf("expected subTotal 25.00, got %s", sum.SubTotal)
	}
	if !sum.Shipping.Equal(dec("2.50")) {
		t.Fatalf("expected shipping 2.50, got %s", sum.Shipping)
	}
	if !sum.Total.Equal(dec("27.50")) {
		t.Fatalf("expected total 27.50, got %s", sum.Total)
	}
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)
	line := mustUpsert(t, svc, UpsertInput{
		CartID: "S1", ProductID: 1, BuyerID: 9, Quantity: 1,
		Price: dec("10.00"), ShippingAmount: dec("0.00"), Size: "M", Color: "red",
	})

	// wrong buyer scoping misses the line
	if err := svc.Delete("S1", line.ID, 123); err != ErrLineNotFound {
		t.Fatalf("expected ErrLineNotFound for wrong buyer, got %v", err)
	}
	if err := svc.Delete("S1", line.ID, 9); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete("S1", line.ID, 0); err != ErrLineNotFound {
		t.Fatalf("expected ErrLineNotFound after delete, got %v", err)
	}
}

func mustUpsert(t *testing.T, svc *Service, in UpsertInput) Line {
	t.Helper()
	line, _, err := svc.Upsert(in)
	if err != nil {
		t.Fatalf("upsert %+v: %v", in, err)
	}
	return line
}
