package order

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func sampleOrder() (Order, []Item) {
	ord := Order{
		OID:            "abc1234def",
		PaymentStatus:  PaymentPending,
		OrderStatus:    StatusProcessing,
		SubTotal:       decimal.RequireFromString("25.00"),
		ShippingAmount: decimal.RequireFromString("2.50"),
		ServiceFee:     decimal.Zero,
		TaxFee:         decimal.Zero,
		Total:          decimal.RequireFromString("27.50"),
		InitialTotal:   decimal.RequireFromString("27.50"),
		Discount:       decimal.Zero,
		FullName:       "Jo Doe",
		Email:          "jo@example.com",
		CreatedAt:      "2026-01-02T15:04:05Z",
	}
	items := []Item{{
		OID:            "bcd2345efa",
		ProductID:      1,
		Quantity:       2,
		Price:          decimal.RequireFromString("10.00"),
		SubTotal:       decimal.RequireFromString("20.00"),
		ShippingAmount: decimal.RequireFromString("2.00"),
		ServiceFee:     decimal.Zero,
		TaxFee:         decimal.Zero,
		Total:          decimal.RequireFromString("22.00"),
		InitialTotal:   decimal.RequireFromString("22.00"),
		Discount:       decimal.Zero,
		Size:           "M",
		Color:          "red",
		CreatedAt:      "2026-01-02T15:04:05Z",
	}}
	return ord, items
}

func TestPlaceOrder_CommitsHeaderItemsAndCartCleanup(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	ord, items := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(42))
	mock.ExpectQuery("INSERT INTO order_items").
		WillReturnRows(sqlmock.NewRows([]string{"item_id"}).AddRow(77))
	mock.ExpectExec("UPDATE orders SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM cart_lines WHERE cart_id").
		WithArgs("S1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	placed, err := repo.PlaceOrder(ord, items, "S1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if placed.ID != 42 {
		t.Fatalf("expected order id 42, got %d", placed.ID)
	}
	if len(placed.Items) != 1 || placed.Items[0].ID != 77 || placed.Items[0].OrderID != 42 {
		t.Fatalf("item ids not wired back: %+v", placed.Items)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPlaceOrder_RollsBackOnItemFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	ord, items := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(42))
	mock.ExpectQuery("INSERT INTO order_items").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	if _, err := repo.PlaceOrder(ord, items, "S1"); err == nil {
		t.Fatalf("expected the item failure to surface")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMarkPaid_ClaimsTransitionOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE orders SET payment_status").
		WithArgs(PaymentPaid, "abc1234def").
		WillReturnResult(sqlmock.NewResult(0, 1))
	claimed, err := repo.MarkPaid("abc1234def")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !claimed {
		t.Fatalf("first transition should be claimed")
	}

	// already Paid: the status guard matches no rows
	mock.ExpectExec("UPDATE orders SET payment_status").
		WithArgs(PaymentPaid, "abc1234def").
		WillReturnResult(sqlmock.NewResult(0, 0))
	claimed, err = repo.MarkPaid("abc1234def")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claimed {
		t.Fatalf("repeat transition must not be claimed")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
