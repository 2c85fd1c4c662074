package product

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `product_id, pid, title, slug, description, category_id, price, old_price, shipping_amount, stock_qty, in_stock, status, featured, vendor_email, created_at`

func (r *PostgresRepository) List() ([]Product, error) {
	rows, err := r.db.Query(`SELECT ` + productColumns + ` FROM product WHERE status = 'published' ORDER BY product_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM product WHERE product_id = $1`, id)
	return scanProduct(row)
}

func (r *PostgresRepository) GetBySlug(slug string) (Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM product WHERE slug = $1`, slug)
	return scanProduct(row)
}

// ListByIDs returns the products whose id is in ids, in the same order.
func (r *PostgresRepository) ListByIDs(ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	rows, err := r.db.Query(`SELECT `+productColumns+` FROM product
        WHERE product_id = ANY($1::int[])
        ORDER BY array_position($1::int[], product_id)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

// DecrementStock runs a conditional update so the stock-sufficiency check
// is evaluated at commit time, not read time. Concurrent decrements for the
// same product serialize on the row.
func (r *PostgresRepository) DecrementStock(id int, qty int) (bool, error) {
	res, err := r.db.Exec(`UPDATE product
        SET stock_qty = stock_qty - $2, in_stock = (stock_qty - $2) > 0
        WHERE product_id = $1 AND stock_qty >= $2`, id, qty)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var (
		p           Product
		description sql.NullString
		categoryID  sql.NullInt64
		price       string
		oldPrice    string
		shipping    string
		vendorEmail sql.NullString
		createdAt   sql.NullString
	)
	err := row.Scan(&p.ID, &p.PID, &p.Title, &p.Slug, &description, &categoryID,
		&price, &oldPrice, &shipping, &p.StockQty, &p.InStock, &p.Status,
		&p.Featured, &vendorEmail, &createdAt)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	if description.Valid {
		p.Description = &description.String
	}
	if categoryID.Valid {
		cid := int(categoryID.Int64)
		p.CategoryID = &cid
	}
	if vendorEmail.Valid {
		p.VendorEmail = &vendorEmail.String
	}
	if createdAt.Valid {
		p.CreatedAt = createdAt.String
	}
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return Product{}, err
	}
	if p.OldPrice, err = decimal.NewFromString(oldPrice); err != nil {
		return Product{}, err
	}
	if p.ShippingAmount, err = decimal.NewFromString(shipping); err != nil {
		return Product{}, err
	}
	return p, nil
}

func collectProducts(rows *sql.Rows) ([]Product, error) {
	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
