package main

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// schema brings an existing store database up to the columns the
// recommendation queries read. Statements are idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS category ("categoryID" SERIAL PRIMARY KEY, "categoryName" TEXT, "categoryNameTH" TEXT, "categoryImg" TEXT, ord INT)`,
	`ALTER TABLE category ADD COLUMN IF NOT EXISTS "categoryNameTH" TEXT`,
	`ALTER TABLE category ADD COLUMN IF NOT EXISTS "parentCategoryID" INT`,
	`CREATE TABLE IF NOT EXISTS product (
		product_id SERIAL PRIMARY KEY,
		product_name TEXT,
		product_name_en TEXT,
		category TEXT,
		product_price INT,
		score INT,
		product_desc TEXT,
		product_desc_en TEXT,
		product_pic TEXT,
		product_pic_second TEXT,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	)`,
	`ALTER TABLE product ADD COLUMN IF NOT EXISTS subcategory_id INT`,
	`CREATE INDEX IF NOT EXISTS product_subcategory_idx ON product (subcategory_id)`,
	`ALTER TABLE users ADD COLUMN IF NOT EXISTS cart jsonb NOT NULL DEFAULT '{}'`,
	`CREATE TABLE IF NOT EXISTS orders (
		"orderID" SERIAL PRIMARY KEY,
		"userID" INT NOT NULL,
		cart jsonb NOT NULL DEFAULT '{}',
		quantity INT NOT NULL DEFAULT 0,
		"totalPrice" numeric NOT NULL DEFAULT 0,
		"shippingPrice" numeric NOT NULL DEFAULT 0,
		"grandPrice" numeric NOT NULL DEFAULT 0,
		status TEXT,
		"createdAt" TEXT,
		"updatedAt" TEXT
	)`,
}

// cartArraysToMaps collapses legacy carts stored as a JSON array of ids
// (e.g. [1,1,3]) into a product id -> quantity map.
const cartArraysToMaps = `UPDATE %s
SET cart = (
	SELECT coalesce(jsonb_object_agg(elem, cnt), '{}'::jsonb)
	FROM (
		SELECT elem, count(*) AS cnt
		FROM jsonb_array_elements_text(cart) AS elem
		GROUP BY elem
	) sub
)
WHERE jsonb_typeof(cart) = 'array'`

func migrate(db *sql.DB) {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatal().Err(err).Msg("schema migration failed")
		}
	}
	for _, table := range []string{"users", "orders"} {
		if _, err := db.Exec(fmt.Sprintf(cartArraysToMaps, table)); err != nil {
			log.Warn().Err(err).Str("table", table).Msg("cart normalization failed")
		}
	}
}
