package order

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

// PlaceOrder runs the whole assembly in one transaction: header first (to
// get a stable order id), items next, aggregate totals finalized after the
// items exist, then the source cart lines are removed. Rollback on any
// failure leaves neither a partial order nor a half-emptied cart.
func (r *PostgresRepository) PlaceOrder(ord Order, items []Item, cartID string) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`INSERT INTO orders
        (oid, buyer_id, payment_status, order_status, full_name, email, phone, address, city, state, country, zipcode, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING order_id`,
		ord.OID, nullableInt(ord.BuyerID), ord.PaymentStatus, ord.OrderStatus,
		ord.FullName, ord.Email, ord.Phone, ord.Address, ord.City, ord.State,
		ord.Country, ord.Zipcode, ord.CreatedAt).Scan(&ord.ID)
	if err != nil {
		return Order{}, err
	}

	for i := range items {
		items[i].OrderID = ord.ID
		err = tx.QueryRow(`INSERT INTO order_items
            (oid, order_id, product_id, qty, price, sub_total, shipping_amount, service_fee, tax_fee, total, initial_total, discount, size, color, country, vendor_email, created_at)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
            RETURNING item_id`,
			items[i].OID, items[i].OrderID, items[i].ProductID, items[i].Quantity,
			items[i].Price.String(), items[i].SubTotal.String(), items[i].ShippingAmount.String(),
			items[i].ServiceFee.String(), items[i].TaxFee.String(), items[i].Total.String(),
			items[i].InitialTotal.String(), items[i].Discount.String(),
			items[i].Size, items[i].Color, items[i].Country,
			nullableString(items[i].VendorEmail), items[i].CreatedAt).Scan(&items[i].ID)
		if err != nil {
			return Order{}, err
		}
	}

	if _, err = tx.Exec(`UPDATE orders SET
        sub_total = $1, shipping_amount = $2, service_fee = $3, tax_fee = $4,
        total = $5, initial_total = $6, discount = $7
        WHERE order_id = $8`,
		ord.SubTotal.String(), ord.ShippingAmount.String(), ord.ServiceFee.String(),
		ord.TaxFee.String(), ord.Total.String(), ord.InitialTotal.String(),
		ord.Discount.String(), ord.ID); err != nil {
		return Order{}, err
	}

	if _, err = tx.Exec(`DELETE FROM cart_lines WHERE cart_id = $1`, cartID); err != nil {
		return Order{}, err
	}

	if err = tx.Commit(); err != nil {
		return Order{}, err
	}

	ord.Items = items
	return ord, nil
}

const orderColumns = `order_id, oid, buyer_id, sub_total, shipping_amount, service_fee, tax_fee, total, initial_total, discount, payment_status, order_status, full_name, email, phone, address, city, state, country, zipcode, stripe_session_id, created_at`

func (r *PostgresRepository) GetByOID(oid string) (Order, error) {
	row := r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE oid = $1`, oid)

	var (
		ord       Order
		buyerID   sql.NullInt64
		sessionID sql.NullString
		createdAt sql.NullString
		amounts   [7]string
	)
	err := row.Scan(&ord.ID, &ord.OID, &buyerID,
		&amounts[0], &amounts[1], &amounts[2], &amounts[3], &amounts[4], &amounts[5], &amounts[6],
		&ord.PaymentStatus, &ord.OrderStatus,
		&ord.FullName, &ord.Email, &ord.Phone, &ord.Address, &ord.City, &ord.State,
		&ord.Country, &ord.Zipcode, &sessionID, &createdAt)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}

	if buyerID.Valid {
		id := int(buyerID.Int64)
		ord.BuyerID = &id
	}
	if sessionID.Valid {
		ord.StripeSessionID = &sessionID.String
	}
	if createdAt.Valid {
		ord.CreatedAt = createdAt.String
	}
	dsts := []*decimal.Decimal{&ord.SubTotal, &ord.ShippingAmount, &ord.ServiceFee, &ord.TaxFee, &ord.Total, &ord.InitialTotal, &ord.Discount}
	for i, dst := range dsts {
		d, err := decimal.NewFromString(amounts[i])
		if err != nil {
			return Order{}, err
		}
		*dst = d
	}
	return ord, nil
}

func (r *PostgresRepository) ItemsByOrderID(orderID int) ([]Item, error) {
	rows, err := r.db.Query(`SELECT item_id, oid, order_id, product_id, qty, price, sub_total, shipping_amount, service_fee, tax_fee, total, initial_total, discount, size, color, country, vendor_email, created_at
        FROM order_items WHERE order_id = $1 ORDER BY item_id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var (
			it          Item
			country     sql.NullString
			vendorEmail sql.NullString
			createdAt   sql.NullString
			amounts     [8]string
		)
		if err := rows.Scan(&it.ID, &it.OID, &it.OrderID, &it.ProductID, &it.Quantity,
			&amounts[0], &amounts[1], &amounts[2], &amounts[3], &amounts[4], &amounts[5], &amounts[6], &amounts[7],
			&it.Size, &it.Color, &country, &vendorEmail, &createdAt); err != nil {
			return nil, err
		}
		if country.Valid {
			it.Country = country.String
		}
		if vendorEmail.Valid {
			it.VendorEmail = &vendorEmail.String
		}
		if createdAt.Valid {
			it.CreatedAt = createdAt.String
		}
		dsts := []*decimal.Decimal{&it.Price, &it.SubTotal, &it.ShippingAmount, &it.ServiceFee, &it.TaxFee, &it.Total, &it.InitialTotal, &it.Discount}
		for i, dst := range dsts {
			d, err := decimal.NewFromString(amounts[i])
			if err != nil {
				return nil, err
			}
			*dst = d
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) SetStripeSessionID(oid string, sessionID string) error {
	res, err := r.db.Exec(`UPDATE orders SET stripe_session_id = $1 WHERE oid = $2`, sessionID, oid)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkPaid is the reconciler's atomic check-and-set: the status guard lives
// in the WHERE clause, so two concurrent confirmations cannot both claim
// the Paid transition.
func (r *PostgresRepository) MarkPaid(oid string) (bool, error) {
	res, err := r.db.Exec(`UPDATE orders SET payment_status = $1 WHERE oid = $2 AND payment_status <> $1`, PaymentPaid, oid)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
