package integration

import (
	"context"
	"sync"
	"testing"

	"freshmart/internal/cart"
	"freshmart/internal/config"
	"freshmart/internal/model"
	"freshmart/internal/repository"
	"freshmart/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutEnv struct {
	pool      *pgxpool.Pool
	carts     cart.Store
	orderRepo repository.OrderRepository
	checkout  service.CheckoutService
}

func newCheckoutEnv(t *testing.T) *checkoutEnv {
	t.Helper()

	pool := SetupTestDB(t)
	carts := NewCartStore(t)
	logger := zerolog.Nop()

	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	addressRepo := repository.NewAddressRepository(pool, logger)

	cfg := config.CheckoutConfig{
		ShippingFee:  decimal.NewFromInt(10),
		StockRetries: 3,
	}

	return &checkoutEnv{
		pool:      pool,
		carts:     carts,
		orderRepo: orderRepo,
		checkout:  service.NewCheckoutService(orderRepo, productRepo, addressRepo, carts, cfg, logger),
	}
}

func TestCommit_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	env := newCheckoutEnv(t)

	apples := seedProduct(t, env.pool, "Gala apples 1kg", "3.50", 10)
	salmon := seedProduct(t, env.pool, "Atlantic salmon 300g", "12.00", 4)
	addressID := seedAddress(t, env.pool, 42)

	_, err := env.carts.Add(ctx, 42, apples.ID, 2)
	require.NoError(t, err)
	_, err = env.carts.Add(ctx, 42, salmon.ID, 1)
	require.NoError(t, err)

	order, err := env.checkout.Commit(ctx, 42, addressID, model.PayMethodGateway, []int64{apples.ID, salmon.ID})
	require.NoError(t, err)

	// Header totals derive from cart quantities and catalogue prices.
	assert.Equal(t, 3, order.TotalCount)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("19.00")))

	// The order and its lines are durable.
	stored, lines, err := env.orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, model.OrderStatusPendingPayment, stored.Status)
	require.Len(t, lines, 2)
	for _, line := range lines {
		if line.ProductID == apples.ID {
			assert.Equal(t, 2, line.Quantity)
			assert.True(t, line.UnitPrice.Equal(apples.UnitPrice))
		}
	}

	// Inventory moved from stock to sales.
	stock, sales := currentStock(t, env.pool, apples.ID)
	assert.Equal(t, 8, stock)
	assert.Equal(t, 2, sales)

	// The committed entries are gone from the cart.
	entries, err := env.carts.List(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCommit_InsufficientStockLeavesStateUntouched(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	env := newCheckoutEnv(t)

	salmon := seedProduct(t, env.pool, "Atlantic salmon 300g", "12.00", 2)
	addressID := seedAddress(t, env.pool, 42)

	_, err := env.carts.Add(ctx, 42, salmon.ID, 3)
	require.NoError(t, err)

	order, err := env.checkout.Commit(ctx, 42, addressID, model.PayMethodCOD, []int64{salmon.ID})

	assert.Nil(t, order)
	assert.ErrorIs(t, err, model.ErrInsufficientStock)

	stock, sales := currentStock(t, env.pool, salmon.ID)
	assert.Equal(t, 2, stock)
	assert.Equal(t, 0, sales)

	quantity, found, err := env.carts.Get(ctx, 42, salmon.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, quantity)

	assert.Equal(t, 0, orderCount(t, env.pool, 42))
}

func TestCommit_PartialCartSelection(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	env := newCheckoutEnv(t)

	apples := seedProduct(t, env.pool, "Gala apples 1kg", "3.50", 10)
	milk := seedProduct(t, env.pool, "Whole milk 2L", "2.10", 10)
	addressID := seedAddress(t, env.pool, 42)

	_, err := env.carts.Add(ctx, 42, apples.ID, 2)
	require.NoError(t, err)
	_, err = env.carts.Add(ctx, 42, milk.ID, 4)
	require.NoError(t, err)

	_, err = env.checkout.Commit(ctx, 42, addressID, model.PayMethodCOD, []int64{apples.ID})
	require.NoError(t, err)

	// Only the committed entry leaves the cart.
	_, found, err := env.carts.Get(ctx, 42, apples.ID)
	require.NoError(t, err)
	assert.False(t, found)

	quantity, found, err := env.carts.Get(ctx, 42, milk.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 4, quantity)

	stock, _ := currentStock(t, env.pool, milk.ID)
	assert.Equal(t, 10, stock)
}

func TestCommit_ConcurrentSingleWinner(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	env := newCheckoutEnv(t)

	salmon := seedProduct(t, env.pool, "Atlantic salmon 300g", "12.00", 5)

	users := []int64{101, 102}
	addresses := make(map[int64]int64, len(users))
	for _, uid := range users {
		addresses[uid] = seedAddress(t, env.pool, uid)
		_, err := env.carts.Add(ctx, uid, salmon.ID, 3)
		require.NoError(t, err)
	}

	// Two commits race for 3 units each out of 5. Exactly one can win.
	var wg sync.WaitGroup
	errs := make(map[int64]error, len(users))
	var mu sync.Mutex

	for _, uid := range users {
		wg.Add(1)
		go func(uid int64) {
			defer wg.Done()
			_, err := env.checkout.Commit(ctx, uid, addresses[uid], model.PayMethodCOD, []int64{salmon.ID})
			mu.Lock()
			errs[uid] = err
			mu.Unlock()
		}(uid)
	}
	wg.Wait()

	winners := 0
	for uid, err := range errs {
		if err == nil {
			winners++
			assert.Equal(t, 1, orderCount(t, env.pool, uid))
		} else {
			// The loser sees the post-winner stock: either the fresh read
			// rejects the quantity or the retry budget runs out.
			assert.True(t,
				err == model.ErrInsufficientStock || err == model.ErrOrderCommitFailed,
				"unexpected loser error: %v", err)
			assert.Equal(t, 0, orderCount(t, env.pool, uid))
		}
	}
	assert.Equal(t, 1, winners)

	stock, sales := currentStock(t, env.pool, salmon.ID)
	assert.Equal(t, 2, stock)
	assert.Equal(t, 3, sales)
}

func TestPlace_DoesNotMutate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	env := newCheckoutEnv(t)

	apples := seedProduct(t, env.pool, "Gala apples 1kg", "3.50", 10)
	_, err := env.carts.Add(ctx, 42, apples.ID, 2)
	require.NoError(t, err)

	preview, err := env.checkout.Place(ctx, 42, []int64{apples.ID})
	require.NoError(t, err)
	assert.True(t, preview.TotalPayable.Equal(decimal.RequireFromString("17.00")))

	stock, sales := currentStock(t, env.pool, apples.ID)
	assert.Equal(t, 10, stock)
	assert.Equal(t, 0, sales)

	quantity, found, err := env.carts.Get(ctx, 42, apples.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, quantity)
}
