package product

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	productColumns = `p.product_id, p.product_name, p.product_name_en, p.product_price, p.score, p.product_desc,
		p.subcategory_id, c."categoryName", p.product_pic, p.product_pic_second, p.created_at, p.updated_at`

	listProductsQuery = `
		SELECT ` + productColumns + `
		FROM product p
		LEFT JOIN category c ON c."categoryID" = p.subcategory_id
		ORDER BY p.product_id
	`
	getProductByIDQuery = `
		SELECT ` + productColumns + `
		FROM product p
		LEFT JOIN category c ON c."categoryID" = p.subcategory_id
		WHERE p.product_id = $1
	`
	listByCategoryIDQuery = `
		SELECT ` + productColumns + `
		FROM product p
		LEFT JOIN category c ON c."categoryID" = p.subcategory_id
		WHERE p.subcategory_id = $1 OR c."parentCategoryID" = $1
		ORDER BY p.product_id
	`

	candidateColumns = `p.product_id, p.product_name, p.product_price, p.product_pic, p.product_pic_second, c."categoryName"`

	listBySubcategoryQuery = `
		SELECT ` + candidateColumns + `
		FROM product p
		LEFT JOIN category c ON c."categoryID" = p.subcategory_id
		WHERE p.subcategory_id = $1 AND NOT (p.product_id = ANY($2::int[]))
		ORDER BY p.product_id
	`
	listBySubcategoriesQuery = `
		SELECT ` + candidateColumns + `
		FROM product p
		LEFT JOIN category c ON c."categoryID" = p.subcategory_id
		WHERE p.subcategory_id = ANY($1::int[]) AND NOT (p.product_id = ANY($2::int[]))
		ORDER BY p.score DESC, p.product_id
		LIMIT $3
	`
	listPopularQuery = `
		SELECT ` + candidateColumns + `
		FROM product p
		LEFT JOIN category c ON c."categoryID" = p.subcategory_id
		WHERE NOT (p.product_id = ANY($1::int[]))
		ORDER BY p.score DESC, p.product_id
		LIMIT $2
	`
	listCandidatesByIDsQuery = `
		SELECT ` + candidateColumns + `
		FROM product p
		LEFT JOIN category c ON c."categoryID" = p.subcategory_id
		WHERE p.product_id = ANY($1::int[])
		ORDER BY array_position($1::int[], p.product_id)
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []Product {
	rows, err := r.db.Query(listProductsQuery)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ListByCategoryID returns products filed under the category itself or any
// of its subcategories.
func (r *PostgresRepository) ListByCategoryID(catID int) []Product {
	rows, err := r.db.Query(listByCategoryIDQuery, catID)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) ListBySubcategory(ctx context.Context, subcategoryID int, exclude []int) ([]Candidate, error) {
	return r.queryCandidates(ctx, listBySubcategoryQuery, subcategoryID, intArray(exclude))
}

func (r *PostgresRepository) ListBySubcategories(ctx context.Context, subcategoryIDs []int, exclude []int, limit int) ([]Candidate, error) {
	if len(subcategoryIDs) == 0 || limit <= 0 {
		return []Candidate{}, nil
	}
	return r.queryCandidates(ctx, listBySubcategoriesQuery, intArray(subcategoryIDs), intArray(exclude), limit)
}

func (r *PostgresRepository) ListPopular(ctx context.Context, exclude []int, limit int) ([]Candidate, error) {
	if limit <= 0 {
		return []Candidate{}, nil
	}
	return r.queryCandidates(ctx, listPopularQuery, intArray(exclude), limit)
}

func (r *PostgresRepository) ListCandidatesByIDs(ctx context.Context, ids []int) ([]Candidate, error) {
	if len(ids) == 0 {
		return []Candidate{}, nil
	}
	return r.queryCandidates(ctx, listCandidatesByIDsQuery, intArray(ids))
}

func (r *PostgresRepository) queryCandidates(ctx context.Context, query string, args ...any) ([]Candidate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Candidate, 0)
	for rows.Next() {
		var (
			c           Candidate
			pic         sql.NullString
			picSecond   sql.NullString
			subcategory sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Price, &pic, &picSecond, &subcategory); err != nil {
			return nil, err
		}
		c.Images = make([]string, 0, 2)
		if pic.Valid && pic.String != "" {
			c.Images = append(c.Images, pic.String)
		}
		if picSecond.Valid && picSecond.String != "" {
			c.Images = append(c.Images, picSecond.String)
		}
		c.Subcategory = subcategory.String
		out = append(out, c)
	}
	return out, rows.Err()
}

// intArray never yields SQL NULL; `x = ANY(NULL)` would filter every row.
func intArray(ids []int) any {
	if ids == nil {
		ids = []int{}
	}
	return pq.Array(ids)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var (
		nameEn        sql.NullString
		subcategoryID sql.NullInt64
		subcategory   sql.NullString
		pic           sql.NullString
		picSecond     sql.NullString
		createdAt     sql.NullString
		updatedAt     sql.NullString
	)

	if err := scanner.Scan(
		&p.ID,
		&p.Name,
		&nameEn,
		&p.Price,
		&p.Score,
		&p.Description,
		&subcategoryID,
		&subcategory,
		&pic,
		&picSecond,
		&createdAt,
		&updatedAt,
	); err != nil {
		return Product{}, err
	}

	if nameEn.Valid {
		p.NameEn = &nameEn.String
	}
	if subcategoryID.Valid {
		id := int(subcategoryID.Int64)
		p.SubcategoryID = &id
	}
	if subcategory.Valid {
		p.Subcategory = &subcategory.String
	}
	if pic.Valid {
		p.Pic = &pic.String
	}
	if picSecond.Valid {
		p.PicSecond = &picSecond.String
	}
	if createdAt.Valid {
		p.CreatedAt = &createdAt.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.String
	}

	return p, nil
}
