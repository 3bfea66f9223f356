package repository

import (
	"context"
	"fmt"

	"freshmart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// addressRepository implements the AddressRepository interface using PostgreSQL.
type addressRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAddressRepository creates a new PostgreSQL-backed address repository.
func NewAddressRepository(pool *pgxpool.Pool, logger zerolog.Logger) AddressRepository {
	return &addressRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "address").Logger(),
	}
}

// GetByID retrieves an address only if it belongs to the given user. The
// ownership check lives in the query so a foreign address id behaves
// exactly like a missing one.
func (r *addressRepository) GetByID(ctx context.Context, id, userID int64) (*model.Address, error) {
	query := `
		SELECT id, user_id, receiver, detail, zip, phone, created_at
		FROM addresses
		WHERE id = $1 AND user_id = $2
	`

	var a model.Address
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&a.ID, &a.UserID, &a.Receiver, &a.Detail, &a.Zip, &a.Phone, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().
				Int64("address_id", id).
				Int64("user_id", userID).
				Msg("address not found for user")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("address_id", id).Msg("failed to query address")
		return nil, fmt.Errorf("failed to query address: %w", err)
	}

	return &a, nil
}
