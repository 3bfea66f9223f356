package service

import (
	"context"
	"fmt"
	"time"

	"freshmart/internal/cart"
	"freshmart/internal/config"
	"freshmart/internal/model"
	"freshmart/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	addressRepo  repository.AddressRepository
	carts        cart.Store
	shippingFee  decimal.Decimal
	stockRetries int
	logger       zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	addressRepo repository.AddressRepository,
	carts cart.Store,
	cfg config.CheckoutConfig,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		addressRepo:  addressRepo,
		carts:        carts,
		shippingFee:  cfg.ShippingFee,
		stockRetries: cfg.StockRetries,
		logger:       logger.With().Str("service", "checkout").Logger(),
	}
}

// Place builds the pre-commit order summary for the chosen products.
func (s *checkoutService) Place(ctx context.Context, userID int64, productIDs []int64) (*CheckoutPreview, error) {
	if len(productIDs) == 0 {
		return nil, model.ErrEmptyOrder
	}

	preview := &CheckoutPreview{
		Lines:       make([]CheckoutLine, 0, len(productIDs)),
		ShippingFee: s.shippingFee,
	}

	for _, productID := range productIDs {
		quantity, found, err := s.carts.Get(ctx, userID, productID)
		if err != nil {
			return nil, fmt.Errorf("failed to read cart: %w", err)
		}
		if !found {
			return nil, model.ErrCartEntryNotFound
		}

		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("failed to read product: %w", err)
		}
		if product == nil {
			return nil, model.ErrProductNotFound
		}

		lineTotal := product.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		preview.Lines = append(preview.Lines, CheckoutLine{
			Product:   *product,
			Quantity:  quantity,
			LineTotal: lineTotal,
		})
		preview.TotalCount += quantity
		preview.TotalPrice = preview.TotalPrice.Add(lineTotal)
	}

	preview.TotalPayable = preview.TotalPrice.Add(preview.ShippingFee)
	return preview, nil
}

// Commit converts the chosen cart entries into a durable order.
//
// The whole commit runs in one transaction with a savepoint around the
// inventory and order writes. Every failure path rolls back to the
// savepoint before returning, so the cart and inventory are unchanged
// unless the order fully commits. Only after the transaction is durable
// are the committed entries removed from the cart.
func (s *checkoutService) Commit(ctx context.Context, userID, addressID int64, payMethod model.PayMethod, productIDs []int64) (*model.Order, error) {
	// Fail-fast validation, no retry.
	if !payMethod.Valid() {
		return nil, model.ErrInvalidPayMethod
	}
	if len(productIDs) == 0 {
		return nil, model.ErrEmptyOrder
	}

	address, err := s.addressRepo.GetByID(ctx, addressID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate address: %w", err)
	}
	if address == nil {
		return nil, model.ErrAddressNotFound
	}

	now := time.Now()
	order := &model.Order{
		ID:          model.NewOrderID(userID, now),
		UserID:      userID,
		AddressID:   addressID,
		PayMethod:   payMethod,
		Status:      model.OrderStatusPendingPayment,
		ShippingFee: s.shippingFee,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
			s.logger.Error().Err(rbErr).Str("order_id", order.ID).Msg("failed to rollback transaction")
		}
	}()

	// Savepoint around the inventory and order writes.
	sp, err := tx.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	abort := func() {
		if rbErr := sp.Rollback(ctx); rbErr != nil {
			s.logger.Error().Err(rbErr).Str("order_id", order.ID).Msg("failed to rollback to savepoint")
		}
	}

	lines := make([]model.OrderLine, 0, len(productIDs))
	for _, productID := range productIDs {
		quantity, found, err := s.carts.Get(ctx, userID, productID)
		if err != nil {
			abort()
			return nil, fmt.Errorf("failed to read cart: %w", err)
		}
		if !found || quantity <= 0 {
			abort()
			return nil, model.ErrCartEntryNotFound
		}

		line, err := s.commitLine(ctx, sp, productID, quantity)
		if err != nil {
			abort()
			return nil, err
		}

		line.OrderID = order.ID
		lines = append(lines, *line)
	}

	order.TotalCount, order.TotalPrice = model.Totals(lines)

	if err := s.orderRepo.CreateOrder(ctx, sp, order); err != nil {
		abort()
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to create order header")
		return nil, model.ErrOrderCommitFailed
	}
	if err := s.orderRepo.CreateOrderLines(ctx, sp, lines); err != nil {
		abort()
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to create order lines")
		return nil, model.ErrOrderCommitFailed
	}

	if err := sp.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}
	committed = true

	// The order is durable from here on. Clearing the committed entries
	// from the cart is best-effort: a failure leaves stale entries the
	// user can remove, not an inconsistent order.
	if err := s.carts.RemoveMany(ctx, userID, productIDs); err != nil {
		s.logger.Error().Err(err).
			Str("order_id", order.ID).
			Int64("user_id", userID).
			Msg("order committed but cart entries were not cleared")
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Int64("user_id", userID).
		Int("line_count", len(lines)).
		Str("total_price", order.TotalPrice.StringFixed(2)).
		Msg("order committed")

	return order, nil
}

// commitLine performs the optimistic stock decrement for one line with a
// bounded retry loop. A quantity above the current stock is a business
// failure and stops immediately; losing the conditional update to a
// concurrent committer triggers a fresh read and another attempt until
// the budget runs out.
func (s *checkoutService) commitLine(ctx context.Context, tx pgx.Tx, productID int64, quantity int) (*model.OrderLine, error) {
	for attempt := 1; attempt <= s.stockRetries; attempt++ {
		product, err := s.productRepo.GetInTx(ctx, tx, productID)
		if err != nil {
			return nil, fmt.Errorf("failed to read product: %w", err)
		}
		if product == nil {
			return nil, model.ErrProductNotFound
		}

		if quantity > product.Stock {
			return nil, model.ErrInsufficientStock
		}

		ok, err := s.productRepo.DecrementStock(ctx, tx, productID, product.Stock, quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement stock: %w", err)
		}
		if !ok {
			s.logger.Debug().
				Int64("product_id", productID).
				Int("attempt", attempt).
				Msg("stock decrement contention, retrying")
			continue
		}

		return &model.OrderLine{
			ID:        uuid.New(),
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: product.UnitPrice,
		}, nil
	}

	s.logger.Warn().
		Int64("product_id", productID).
		Int("attempts", s.stockRetries).
		Msg("stock decrement retries exhausted")
	return nil, model.ErrOrderCommitFailed
}
