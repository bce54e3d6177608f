package order

import (
	"context"
	"database/sql"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

const productSalesQuery = `
	SELECT (e.key)::int AS product_id, SUM((e.value)::int) AS units
	FROM orders o, jsonb_each_text(o.cart) e
	WHERE o."createdAt"::timestamptz >= $1 AND o.status <> $2
	GROUP BY 1
	ORDER BY units DESC, product_id
	LIMIT $3
`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ProductSales(ctx context.Context, since time.Time, limit int) ([]Sale, error) {
	rows, err := r.db.QueryContext(ctx, productSalesQuery, since.UTC(), StatusCancelled, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Sale, 0)
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ProductID, &s.Units); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
