package data

// schemaStatements implement the full-replace semantics: every load starts
// from freshly created tables. The types are deliberately portable between
// sqlite3 and postgres.
var schemaStatements = []string{
	`DROP TABLE IF EXISTS transactions`,
	`DROP TABLE IF EXISTS products`,
	`DROP TABLE IF EXISTS stores`,
	`CREATE TABLE stores (
		store_id       BIGINT NOT NULL,
		store_location TEXT   NOT NULL
	)`,
	`CREATE TABLE products (
		product_id       BIGINT           NOT NULL,
		product_category TEXT             NOT NULL,
		product_type     TEXT             NOT NULL,
		product_detail   TEXT             NOT NULL,
		unit_price       DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE transactions (
		transaction_id   BIGINT NOT NULL,
		transaction_date TEXT   NOT NULL,
		transaction_time TEXT   NOT NULL,
		transaction_qty  BIGINT NOT NULL,
		store_id         BIGINT NOT NULL,
		product_id       BIGINT NOT NULL
	)`,
}

const insertStore = `
INSERT INTO stores (store_id, store_location)
VALUES (:store_id, :store_location)`

const insertProduct = `
INSERT INTO products (product_id, product_category, product_type, product_detail, unit_price)
VALUES (:product_id, :product_category, :product_type, :product_detail, :unit_price)`

const insertTransaction = `
INSERT INTO transactions (transaction_id, transaction_date, transaction_time, transaction_qty, store_id, product_id)
VALUES (:transaction_id, :transaction_date, :transaction_time, :transaction_qty, :store_id, :product_id)`

const joinedViewQuery = `
SELECT
	t.transaction_id,
	t.transaction_date,
	t.transaction_time,
	t.transaction_qty,
	s.store_id,
	s.store_location,
	p.product_id,
	p.product_category,
	p.product_type,
	p.product_detail,
	p.unit_price,
	(t.transaction_qty * p.unit_price) AS total_amount
FROM transactions t
JOIN stores s ON t.store_id = s.store_id
JOIN products p ON t.product_id = p.product_id
ORDER BY t.transaction_id`
