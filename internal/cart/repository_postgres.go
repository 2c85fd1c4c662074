package cart

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const lineColumns = `line_id, cart_id, product_id, buyer_id, qty, price, sub_total, shipping_amount, service_fee, tax_fee, total, country, size, color, created_at`

func (r *PostgresRepository) FindByKey(cartID string, productID, buyerID int) (Line, error) {
	row := r.db.QueryRow(`SELECT `+lineColumns+` FROM cart_lines
        WHERE cart_id = $1 AND product_id = $2 AND buyer_id = $3`, cartID, productID, buyerID)
	return scanLine(row)
}

func (r *PostgresRepository) Insert(l Line) (Line, error) {
	err := r.db.QueryRow(`INSERT INTO cart_lines
        (cart_id, product_id, buyer_id, qty, price, sub_total, shipping_amount, service_fee, tax_fee, total, country, size, color, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING line_id`,
		l.CartID, l.ProductID, l.BuyerID, l.Quantity,
		l.Price.String(), l.SubTotal.String(), l.ShippingAmount.String(),
		l.ServiceFee.String(), l.TaxFee.String(), l.Total.String(),
		l.Country, l.Size, l.Color, l.CreatedAt).Scan(&l.ID)
	if err != nil {
		return Line{}, err
	}
	return l, nil
}

func (r *PostgresRepository) Update(l Line) (Line, error) {
	res, err := r.db.Exec(`UPDATE cart_lines SET
        qty = $1, price = $2, sub_total = $3, shipping_amount = $4,
        service_fee = $5, tax_fee = $6, total = $7, country = $8, size = $9, color = $10
        WHERE line_id = $11`,
		l.Quantity, l.Price.String(), l.SubTotal.String(), l.ShippingAmount.String(),
		l.ServiceFee.String(), l.TaxFee.String(), l.Total.String(),
		l.Country, l.Size, l.Color, l.ID)
	if err != nil {
		return Line{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Line{}, err
	}
	if n == 0 {
		return Line{}, ErrLineNotFound
	}
	return l, nil
}

func (r *PostgresRepository) ListByCartID(cartID string, buyerID int) ([]Line, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if buyerID != 0 {
		rows, err = r.db.Query(`SELECT `+lineColumns+` FROM cart_lines
            WHERE cart_id = $1 AND buyer_id = $2 ORDER BY line_id`, cartID, buyerID)
	} else {
		rows, err = r.db.Query(`SELECT `+lineColumns+` FROM cart_lines
            WHERE cart_id = $1 ORDER BY line_id`, cartID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Line, 0)
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Delete(cartID string, lineID, buyerID int) error {
	var (
		res sql.Result
		err error
	)
	if buyerID != 0 {
		res, err = r.db.Exec(`DELETE FROM cart_lines WHERE cart_id = $1 AND line_id = $2 AND buyer_id = $3`, cartID, lineID, buyerID)
	} else {
		res, err = r.db.Exec(`DELETE FROM cart_lines WHERE cart_id = $1 AND line_id = $2`, cartID, lineID)
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLineNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLine(row rowScanner) (Line, error) {
	var (
		l         Line
		price     string
		subTotal  string
		shipping  string
		service   string
		tax       string
		total     string
		country   sql.NullString
		createdAt sql.NullString
	)
	err := row.Scan(&l.ID, &l.CartID, &l.ProductID, &l.BuyerID, &l.Quantity,
		&price, &subTotal, &shipping, &service, &tax, &total,
		&country, &l.Size, &l.Color, &createdAt)
	if err == sql.ErrNoRows {
		return Line{}, ErrLineNotFound
	}
	if err != nil {
		return Line{}, err
	}
	if country.Valid {
		l.Country = country.String
	}
	if createdAt.Valid {
		l.CreatedAt = createdAt.String
	}
	for _, f := range []struct {
		dst *decimal.Decimal
		src string
	}{
		{&l.Price, price}, {&l.SubTotal, subTotal}, {&l.ShippingAmount, shipping},
		{&l.ServiceFee, service}, {&l.TaxFee, tax}, {&l.Total, total},
	} {
		d, err := decimal.NewFromString(f.src)
		if err != nil {
			return Line{}, err
		}
		*f.dst = d
	}
	return l, nil
}
