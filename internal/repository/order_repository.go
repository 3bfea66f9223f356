package repository

import (
	"context"
	"fmt"

	"freshmart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order header within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, user_id, address_id, pay_method, status,
			total_count, total_price, shipping_fee, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.UserID, order.AddressID, order.PayMethod, order.Status,
		order.TotalCount, order.TotalPrice, order.ShippingFee,
		order.CreatedAt, order.UpdatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID).
		Msg("order header created")

	return nil
}

// CreateOrderLines inserts the order's lines within the provided transaction.
func (r *orderRepository) CreateOrderLines(ctx context.Context, tx pgx.Tx, lines []model.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_lines (id, order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
	`

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(query, line.ID, line.OrderID, line.ProductID, line.Quantity, line.UnitPrice)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(lines); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", lines[i].OrderID).
				Int64("product_id", lines[i].ProductID).
				Msg("failed to create order line")
			return fmt.Errorf("failed to create order line: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(lines)).
		Msg("order lines created")

	return nil
}

const orderColumns = `id, user_id, address_id, pay_method, status,
	total_count, total_price, shipping_fee, trade_no, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.AddressID, &o.PayMethod, &o.Status,
		&o.TotalCount, &o.TotalPrice, &o.ShippingFee, &o.TradeNo,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID retrieves an order by its ID along with its lines.
func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, []model.OrderLine, error) {
	orderQuery := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, orderQuery, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id).Msg("order not found")
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to query order")
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}

	linesQuery := `
		SELECT id, order_id, product_id, quantity, unit_price, comment
		FROM order_lines
		WHERE order_id = $1
		ORDER BY product_id
	`

	rows, err := r.pool.Query(ctx, linesQuery, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", id).
			Msg("failed to query order lines")
		return nil, nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	var lines []model.OrderLine
	for rows.Next() {
		var line model.OrderLine
		err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID,
			&line.Quantity, &line.UnitPrice, &line.Comment)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order line row")
			return nil, nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order line rows")
		return nil, nil, fmt.Errorf("error iterating order lines: %w", err)
	}

	return order, lines, nil
}

// ListByUser retrieves all orders placed by a user, newest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// MarkPaid transitions an order to paid and records the gateway trade
// number. The status guard in the WHERE clause makes the transition
// happen at most once even if confirmations arrive concurrently.
func (r *orderRepository) MarkPaid(ctx context.Context, id, tradeNo string) (bool, error) {
	query := `
		UPDATE orders
		SET status = $3, trade_no = $4, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	tag, err := r.pool.Exec(ctx, query, id,
		model.OrderStatusPendingPayment, model.OrderStatusPaid, tradeNo)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to mark order paid")
		return false, fmt.Errorf("failed to mark order paid: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("order_id", id).Msg("order was not pending payment")
		return false, nil
	}

	r.logger.Info().Str("order_id", id).Str("trade_no", tradeNo).Msg("order marked paid")
	return true, nil
}

// UpdateStatus performs a guarded status transition.
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus) (bool, error) {
	query := `
		UPDATE orders
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	tag, err := r.pool.Exec(ctx, query, id, from, to)
	if err != nil {
		r.logger.Error().Err(err).
			Str("order_id", id).
			Str("from", string(from)).
			Str("to", string(to)).
			Msg("failed to update order status")
		return false, fmt.Errorf("failed to update order status: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// SetLineComment stores a post-delivery comment on one order line.
func (r *orderRepository) SetLineComment(ctx context.Context, orderID string, productID int64, comment string) error {
	query := `
		UPDATE order_lines
		SET comment = $3
		WHERE order_id = $1 AND product_id = $2
	`

	_, err := r.pool.Exec(ctx, query, orderID, productID, comment)
	if err != nil {
		r.logger.Error().Err(err).
			Str("order_id", orderID).
			Int64("product_id", productID).
			Msg("failed to set line comment")
		return fmt.Errorf("failed to set line comment: %w", err)
	}

	return nil
}
