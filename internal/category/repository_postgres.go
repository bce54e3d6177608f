package category

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lib/pq"
)

const (
	listQuery = `SELECT "categoryID", "categoryName", "categoryNameTH", "categoryImg", "parentCategoryID"
FROM category ORDER BY COALESCE(ord, 0) DESC, "categoryID" LIMIT $1`

	findByNamesQuery = `SELECT "categoryID", "categoryName", "categoryNameTH", "categoryImg", "parentCategoryID"
FROM category
WHERE lower("categoryName") = ANY($1::text[])
ORDER BY array_position($1::text[], lower("categoryName")), "categoryID"`

	listChildrenQuery = `SELECT "categoryID", "categoryName", "categoryNameTH", "categoryImg", "parentCategoryID"
FROM category WHERE "parentCategoryID" = $1 ORDER BY COALESCE(ord, 0) DESC, "categoryID"`
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns category rows ordered by `ord` then id.
// A missing table yields an empty slice.
func (r *PostgresRepository) List(limit int) ([]CategoryItem, error) {
	rows, err := r.db.Query(listQuery, limit)
	if err != nil {
		return []CategoryItem{}, nil
	}
	defer rows.Close()
	return scanCategories(rows)
}

func (r *PostgresRepository) FindByNames(ctx context.Context, names []string) ([]CategoryItem, error) {
	if len(names) == 0 {
		return []CategoryItem{}, nil
	}
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}

	rows, err := r.db.QueryContext(ctx, findByNamesQuery, pq.Array(lowered))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategories(rows)
}

func (r *PostgresRepository) ListChildren(parentID int) ([]CategoryItem, error) {
	rows, err := r.db.Query(listChildrenQuery, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategories(rows)
}

func scanCategories(rows *sql.Rows) ([]CategoryItem, error) {
	out := make([]CategoryItem, 0)
	for rows.Next() {
		var (
			id     int
			name   string
			nameTH sql.NullString
			img    sql.NullString
			parent sql.NullInt64
		)
		if err := rows.Scan(&id, &name, &nameTH, &img, &parent); err != nil {
			continue
		}
		item := CategoryItem{CategoryID: id, CategoryName: name}
		if nameTH.Valid {
			item.CategoryNameTH = &nameTH.String
		}
		if img.Valid {
			item.CategoryImg = &img.String
		}
		if parent.Valid {
			p := int(parent.Int64)
			item.ParentCategoryID = &p
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
