package repository

import (
	"context"
	"testing"
	"time"

	"freshmart/internal/database"
	"freshmart/internal/model"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	require.NoError(t, err)
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	require.NoError(t, err)

	require.NoError(t, database.CreateSchema(ctx, pool))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// seedProduct inserts one product and returns it with the generated id.
func seedProduct(t *testing.T, pool *pgxpool.Pool, name string, price string, stock int) model.Product {
	t.Helper()
	ctx := context.Background()

	p := model.Product{
		Name:      name,
		UnitPrice: decimal.RequireFromString(price),
		Stock:     stock,
	}

	err := pool.QueryRow(ctx, `
		INSERT INTO products (name, unit_price, stock)
		VALUES ($1, $2, $3)
		RETURNING id, sales, created_at, updated_at
	`, p.Name, p.UnitPrice, p.Stock).Scan(&p.ID, &p.Sales, &p.CreatedAt, &p.UpdatedAt)
	require.NoError(t, err)

	return p
}

// seedAddress inserts one address for a user and returns its id.
func seedAddress(t *testing.T, pool *pgxpool.Pool, userID int64) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx, `
		INSERT INTO addresses (user_id, receiver, detail, zip, phone)
		VALUES ($1, 'Receiver', '1 Test Street', '12345', '555-0100')
		RETURNING id
	`, userID).Scan(&id)
	require.NoError(t, err)

	return id
}
