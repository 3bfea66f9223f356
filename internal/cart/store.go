// Package cart holds the Redis-backed shopping cart. Each user owns one
// Redis hash mapping product id to desired quantity; entries are never
// shared across users, so no cross-user synchronisation is needed.
package cart

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Store defines the cart operations the checkout flow depends on.
// Implementations surface infrastructure failures to the caller without
// retrying internally.
type Store interface {
	// Add increments the quantity of a product by delta (creating the
	// entry when absent) and returns the new quantity.
	Add(ctx context.Context, userID, productID int64, delta int) (int, error)

	// Set overwrites the quantity of a product.
	Set(ctx context.Context, userID, productID int64, quantity int) error

	// Remove deletes one product entry.
	Remove(ctx context.Context, userID, productID int64) error

	// RemoveMany deletes the given product entries, leaving the rest of
	// the cart untouched.
	RemoveMany(ctx context.Context, userID int64, productIDs []int64) error

	// Get returns the quantity for one product; found is false when the
	// entry does not exist.
	Get(ctx context.Context, userID, productID int64) (quantity int, found bool, err error)

	// List returns the whole cart as product id → quantity.
	List(ctx context.Context, userID int64) (map[int64]int, error)

	// Count returns the number of distinct product entries.
	Count(ctx context.Context, userID int64) (int, error)
}

// cartKey builds the Redis key holding one user's cart hash.
func cartKey(userID int64) string {
	return fmt.Sprintf("freshmart:cart:%d", userID)
}

// RedisStore implements Store on a Redis hash per user.
type RedisStore struct {
	rdb    *redis.Client
	logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed cart store.
func NewRedisStore(rdb *redis.Client, logger zerolog.Logger) *RedisStore {
	return &RedisStore{
		rdb:    rdb,
		logger: logger.With().Str("store", "cart").Logger(),
	}
}

// Add increments the quantity of a product by delta.
func (s *RedisStore) Add(ctx context.Context, userID, productID int64, delta int) (int, error) {
	qty, err := s.rdb.HIncrBy(ctx, cartKey(userID), strconv.FormatInt(productID, 10), int64(delta)).Result()
	if err != nil {
		s.logger.Error().Err(err).
			Int64("user_id", userID).
			Int64("product_id", productID).
			Msg("failed to add cart entry")
		return 0, fmt.Errorf("failed to add cart entry: %w", err)
	}
	return int(qty), nil
}

// Set overwrites the quantity of a product.
func (s *RedisStore) Set(ctx context.Context, userID, productID int64, quantity int) error {
	err := s.rdb.HSet(ctx, cartKey(userID), strconv.FormatInt(productID, 10), quantity).Err()
	if err != nil {
		s.logger.Error().Err(err).
			Int64("user_id", userID).
			Int64("product_id", productID).
			Msg("failed to set cart entry")
		return fmt.Errorf("failed to set cart entry: %w", err)
	}
	return nil
}

// Remove deletes one product entry.
func (s *RedisStore) Remove(ctx context.Context, userID, productID int64) error {
	return s.RemoveMany(ctx, userID, []int64{productID})
}

// RemoveMany deletes the given product entries.
func (s *RedisStore) RemoveMany(ctx context.Context, userID int64, productIDs []int64) error {
	if len(productIDs) == 0 {
		return nil
	}

	fields := make([]string, len(productIDs))
	for i, id := range productIDs {
		fields[i] = strconv.FormatInt(id, 10)
	}

	if err := s.rdb.HDel(ctx, cartKey(userID), fields...).Err(); err != nil {
		s.logger.Error().Err(err).
			Int64("user_id", userID).
			Int("count", len(productIDs)).
			Msg("failed to remove cart entries")
		return fmt.Errorf("failed to remove cart entries: %w", err)
	}
	return nil
}

// Get returns the quantity for one product.
func (s *RedisStore) Get(ctx context.Context, userID, productID int64) (int, bool, error) {
	val, err := s.rdb.HGet(ctx, cartKey(userID), strconv.FormatInt(productID, 10)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		s.logger.Error().Err(err).
			Int64("user_id", userID).
			Int64("product_id", productID).
			Msg("failed to get cart entry")
		return 0, false, fmt.Errorf("failed to get cart entry: %w", err)
	}

	qty, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt cart quantity %q: %w", val, err)
	}
	return qty, true, nil
}

// List returns the whole cart as product id → quantity.
func (s *RedisStore) List(ctx context.Context, userID int64) (map[int64]int, error) {
	raw, err := s.rdb.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list cart")
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}

	items := make(map[int64]int, len(raw))
	for field, val := range raw {
		productID, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt cart field %q: %w", field, err)
		}
		qty, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("corrupt cart quantity %q: %w", val, err)
		}
		items[productID] = qty
	}
	return items, nil
}

// Count returns the number of distinct product entries.
func (s *RedisStore) Count(ctx context.Context, userID int64) (int, error) {
	n, err := s.rdb.HLen(ctx, cartKey(userID)).Result()
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to count cart")
		return 0, fmt.Errorf("failed to count cart: %w", err)
	}
	return int(n), nil
}
