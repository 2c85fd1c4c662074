package product

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestDecrementStock_Guard(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// sufficient stock: one row updated
	mock.ExpectExec("UPDATE product").WithArgs(7, 2).WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := repo.DecrementStock(7, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected decrement to be applied")
	}

	// insufficient stock: the WHERE guard matches no rows
	mock.ExpectExec("UPDATE product").WithArgs(7, 50).WillReturnResult(sqlmock.NewResult(0, 0))
	ok, err = repo.DecrementStock(7, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected decrement to be skipped when stock is short")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetBySlug_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT .* FROM product WHERE slug").
		WithArgs("missing-thing").
		WillReturnRows(sqlmock.NewRows([]string{"product_id"}))

	if _, err := repo.GetBySlug("missing-thing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
