package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the DDL for the order-commit subsystem. The CHECK on
// products.stock is a storage-level backstop behind the application's
// oversell check: a decrement can never take stock negative.
const Schema = `
	CREATE TABLE IF NOT EXISTS products (
		id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		name TEXT NOT NULL,
		unit_price NUMERIC(10,2) NOT NULL CHECK (unit_price >= 0),
		stock INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
		sales INT NOT NULL DEFAULT 0 CHECK (sales >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS addresses (
		id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		user_id BIGINT NOT NULL,
		receiver TEXT NOT NULL,
		detail TEXT NOT NULL,
		zip TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_addresses_user ON addresses(user_id);

	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		address_id BIGINT NOT NULL,
		pay_method TEXT NOT NULL,
		status TEXT NOT NULL,
		total_count INT NOT NULL,
		total_price NUMERIC(12,2) NOT NULL,
		shipping_fee NUMERIC(12,2) NOT NULL,
		trade_no TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS order_lines (
		id UUID PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders(id),
		product_id BIGINT NOT NULL,
		quantity INT NOT NULL CHECK (quantity > 0),
		unit_price NUMERIC(10,2) NOT NULL,
		comment TEXT,
		UNIQUE (order_id, product_id)
	);
`

// CreateSchema applies the schema to the connected database.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
