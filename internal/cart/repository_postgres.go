package cart

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	selectCartQuery = `SELECT cart FROM users WHERE "userId" = $1`

	updateCartQuery = `UPDATE users SET cart = $1, "updateAt" = $2 WHERE "userId" = $3`

	clearCartQuery = `UPDATE users SET cart = '{}'::jsonb, "updateAt" = $1 WHERE "userId" = $2`

	getCartQuery = `
        SELECT p.product_id, p.product_name, p.product_price, p.product_pic, c."categoryName"
        FROM product p
        LEFT JOIN category c ON c."categoryID" = p.subcategory_id
        WHERE p.product_id = ANY($1::int[])
        ORDER BY array_position($1::int[], p.product_id)
    `

	cartLinesQuery = `
        SELECT p.product_id, COALESCE(c."categoryName", '')
        FROM product p
        LEFT JOIN category c ON c."categoryID" = p.subcategory_id
        WHERE p.product_id = ANY($1::int[])
    `
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) AddToCart(userID int, productID int, qty int, updatedAt string) ([]Item, error) {
	m, err := r.loadCart(context.Background(), userID)
	if err != nil {
		return nil, err
	}

	key := strconv.Itoa(productID)
	if newQty := m[key] + qty; newQty <= 0 {
		delete(m, key)
	} else {
		m[key] = newQty
	}

	updatedCart, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.Exec(updateCartQuery, string(updatedCart), updatedAt, userID); err != nil {
		return nil, err
	}
	return r.itemsFor(m)
}

func (r *PostgresRepository) GetCart(userID int) ([]Item, error) {
	m, err := r.loadCart(context.Background(), userID)
	if err != nil {
		return nil, err
	}
	return r.itemsFor(m)
}

func (r *PostgresRepository) ClearCart(userID int, updatedAt string) error {
	res, err := r.db.Exec(clearCartQuery, updatedAt, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Lines lists the cart's products with their subcategory name. Products that
// vanished from the catalog keep their id so they are still excluded from
// recommendations.
func (r *PostgresRepository) Lines(ctx context.Context, cartID int) ([]LineView, error) {
	m, err := r.loadCart(ctx, cartID)
	if err == ErrNotFound {
		return []LineView{}, nil
	}
	if err != nil {
		return nil, err
	}
	ids := cartIDs(m)
	if len(ids) == 0 {
		return []LineView{}, nil
	}

	rows, err := r.db.QueryContext(ctx, cartLinesQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := make(map[int]string, len(ids))
	for rows.Next() {
		var (
			pid   int
			label string
		)
		if err := rows.Scan(&pid, &label); err != nil {
			return nil, err
		}
		labels[pid] = label
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]LineView, 0, len(ids))
	for _, pid := range ids {
		out = append(out, LineView{ProductID: pid, SubcategoryLabel: labels[pid]})
	}
	return out, nil
}

func (r *PostgresRepository) loadCart(ctx context.Context, userID int) (map[string]int, error) {
	var raw sql.NullString
	if err := r.db.QueryRowContext(ctx, selectCartQuery, userID).Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeCart(raw)
}

func (r *PostgresRepository) itemsFor(m map[string]int) ([]Item, error) {
	ids := cartIDs(m)
	if len(ids) == 0 {
		return []Item{}, nil
	}

	rows, err := r.db.Query(getCartQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0, len(ids))
	for rows.Next() {
		var (
			it          Item
			img         sql.NullString
			subcategory sql.NullString
		)
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.ProductPrice, &img, &subcategory); err != nil {
			return nil, err
		}
		if img.Valid {
			it.ProductImg = &img.String
		}
		if subcategory.Valid {
			it.Subcategory = &subcategory.String
		}
		it.Quantity = m[strconv.Itoa(it.ProductID)]
		out = append(out, it)
	}
	return out, rows.Err()
}

// decodeCart reads the `{"<productID>": qty}` map, falling back to the legacy
// array-of-ids shape.
func decodeCart(raw sql.NullString) (map[string]int, error) {
	m := make(map[string]int)
	if !raw.Valid || raw.String == "" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(raw.String), &m); err != nil {
		var arr []int
		if err2 := json.Unmarshal([]byte(raw.String), &arr); err2 != nil {
			return nil, err
		}
		m = make(map[string]int, len(arr))
		for _, pid := range arr {
			m[strconv.Itoa(pid)]++
		}
	}
	return m, nil
}

func cartIDs(m map[string]int) []int {
	byQty := make(map[int]int, len(m))
	for k, q := range m {
		if pid, err := strconv.Atoi(k); err == nil && q > 0 {
			byQty[pid] = q
		}
	}
	return sortedIDs(byQty)
}
