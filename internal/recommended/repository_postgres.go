package recommended

import (
	"database/sql"
	"fmt"
)

// Repository provides access to recommended items.
type Repository interface {
	List(limit int, offset int) ([]RecommendedItem, error)
}

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

const listRecommendedQuery = `SELECT product_id, product_pic, product_name_en, product_name, product_price, score
FROM product ORDER BY score DESC, product_id LIMIT $1 OFFSET $2`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(limit int, offset int) ([]RecommendedItem, error) {
	rows, err := r.db.Query(listRecommendedQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list recommended products: %w", err)
	}
	defer rows.Close()

	out := make([]RecommendedItem, 0)
	for rows.Next() {
		var (
			id     int
			pic    sql.NullString
			nameEn sql.NullString
			name   sql.NullString
			price  sql.NullInt64
			score  sql.NullInt64
		)
		if err := rows.Scan(&id, &pic, &nameEn, &name, &price, &score); err != nil {
			return nil, fmt.Errorf("scan recommended product: %w", err)
		}
		item := RecommendedItem{ProductID: id}
		if pic.Valid {
			item.ProductImg = &pic.String
		}
		// prefer English name if available; keep localized in ProductNameTH
		if nameEn.Valid {
			item.ProductName = &nameEn.String
		}
		if name.Valid {
			item.ProductNameTH = &name.String
		}
		if price.Valid {
			v := int(price.Int64)
			item.ProductPrice = &v
		}
		if score.Valid {
			v := int(score.Int64)
			item.Score = &v
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
