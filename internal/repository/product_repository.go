package repository

import (
	"context"
	"fmt"

	"freshmart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id, name, unit_price, stock, sales, created_at, updated_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.UnitPrice, &p.Stock, &p.Sales, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetAll retrieves all products with pagination support.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// GetInTx retrieves a product inside the given transaction.
func (r *productRepository) GetInTx(ctx context.Context, tx pgx.Tx, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(tx.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("product_id", id).Msg("product not found in tx")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product in tx")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// DecrementStock performs the conditional stock decrement. The WHERE clause
// carries the compare-and-swap precondition: the row only changes if its
// stock still equals what the caller read. A zero row count means a
// concurrent checkout won the race and the caller must re-read and retry.
func (r *productRepository) DecrementStock(ctx context.Context, tx pgx.Tx, id int64, expectedStock, quantity int) (bool, error) {
	query := `
		UPDATE products
		SET stock = stock - $3,
		    sales = sales + $3,
		    updated_at = NOW()
		WHERE id = $1 AND stock = $2
	`

	tag, err := tx.Exec(ctx, query, id, expectedStock, quantity)
	if err != nil {
		r.logger.Error().Err(err).
			Int64("product_id", id).
			Int("expected_stock", expectedStock).
			Int("quantity", quantity).
			Msg("failed to decrement stock")
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().
			Int64("product_id", id).
			Int("expected_stock", expectedStock).
			Msg("stock decrement lost the race")
		return false, nil
	}

	return true, nil
}
