package category

import (
	"database/sql"
)

// Repository provides access to category rows.
type Repository interface {
	List(limit int) ([]CategoryItem, error)
}

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns active categories ordered by title.
func (r *PostgresRepository) List(limit int) ([]CategoryItem, error) {
	rows, err := r.db.Query(`SELECT category_id, title, slug, active FROM category WHERE active ORDER BY title LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CategoryItem, 0)
	for rows.Next() {
		var item CategoryItem
		if err := rows.Scan(&item.CategoryID, &item.Title, &item.Slug, &item.Active); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
