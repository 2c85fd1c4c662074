package buyer

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const buyerColumns = `buyer_id, email, password, full_name, phone, created_at, updated_at`

func (r *PostgresRepository) GetByID(id int) (Buyer, error) {
	row := r.db.QueryRow(`SELECT `+buyerColumns+` FROM buyers WHERE buyer_id = $1`, id)
	return scanBuyer(row)
}

func (r *PostgresRepository) GetByEmail(email string) (Buyer, error) {
	row := r.db.QueryRow(`SELECT `+buyerColumns+` FROM buyers WHERE email = $1`, email)
	return scanBuyer(row)
}

func (r *PostgresRepository) Create(b Buyer) (Buyer, error) {
	err := r.db.QueryRow(`INSERT INTO buyers (email, password, full_name, phone, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING buyer_id`,
		b.Email, b.Password, b.FullName, b.Phone, b.CreatedAt, b.UpdatedAt).Scan(&b.ID)
	if err != nil {
		return Buyer{}, err
	}
	return b, nil
}

func (r *PostgresRepository) UpdatePassword(id int, hashed string, updatedAt string) error {
	res, err := r.db.Exec(`UPDATE buyers SET password = $1, updated_at = $2 WHERE buyer_id = $3`, hashed, updatedAt, id)
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

func scanBuyer(row *sql.Row) (Buyer, error) {
	var (
		b         Buyer
		phone     sql.NullString
		createdAt sql.NullString
		updatedAt sql.NullString
	)
	err := row.Scan(&b.ID, &b.Email, &b.Password, &b.FullName, &phone, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return Buyer{}, ErrNotFound
	}
	if err != nil {
		return Buyer{}, err
	}
	if phone.Valid {
		b.Phone = phone.String
	}
	if createdAt.Valid {
		b.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		b.UpdatedAt = updatedAt.String
	}
	return b, nil
}
