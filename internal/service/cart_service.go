package service

import (
	"context"
	"fmt"

	"freshmart/internal/cart"
	"freshmart/internal/model"
	"freshmart/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartService implements CartService. Quantities are validated against
// current stock when the cart changes; the authoritative check still
// happens at commit time under the transaction.
type cartService struct {
	carts       cart.Store
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(carts cart.Store, productRepo repository.ProductRepository, logger zerolog.Logger) CartService {
	return &cartService{
		carts:       carts,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// lookupProduct validates that the product exists.
func (s *cartService) lookupProduct(ctx context.Context, productID int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// Add increments a product's cart quantity and returns the new total.
func (s *cartService) Add(ctx context.Context, userID, productID int64, delta int) (int, error) {
	if delta <= 0 {
		return 0, model.ErrInvalidQuantity
	}

	product, err := s.lookupProduct(ctx, productID)
	if err != nil {
		return 0, err
	}

	current, _, err := s.carts.Get(ctx, userID, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to read cart: %w", err)
	}
	if current+delta > product.Stock {
		return 0, model.ErrInsufficientStock
	}

	quantity, err := s.carts.Add(ctx, userID, productID, delta)
	if err != nil {
		return 0, fmt.Errorf("failed to add to cart: %w", err)
	}

	s.logger.Debug().
		Int64("user_id", userID).
		Int64("product_id", productID).
		Int("quantity", quantity).
		Msg("cart entry added")

	return quantity, nil
}

// Update overwrites a product's cart quantity.
func (s *cartService) Update(ctx context.Context, userID, productID int64, quantity int) error {
	if quantity <= 0 {
		return model.ErrInvalidQuantity
	}

	product, err := s.lookupProduct(ctx, productID)
	if err != nil {
		return err
	}
	if quantity > product.Stock {
		return model.ErrInsufficientStock
	}

	if err := s.carts.Set(ctx, userID, productID, quantity); err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}
	return nil
}

// Remove deletes a product from the cart.
func (s *cartService) Remove(ctx context.Context, userID, productID int64) error {
	if err := s.carts.Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("failed to remove from cart: %w", err)
	}
	return nil
}

// List returns the cart joined with product details.
func (s *cartService) List(ctx context.Context, userID int64) (*CartView, error) {
	entries, err := s.carts.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}

	view := &CartView{Items: make([]CheckoutLine, 0, len(entries))}
	for productID, quantity := range entries {
		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("failed to get product: %w", err)
		}
		if product == nil {
			// Product withdrawn from the catalogue after it was carted;
			// skip it rather than failing the whole listing.
			s.logger.Warn().
				Int64("product_id", productID).
				Int64("user_id", userID).
				Msg("cart references unknown product")
			continue
		}

		lineTotal := product.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		view.Items = append(view.Items, CheckoutLine{
			Product:   *product,
			Quantity:  quantity,
			LineTotal: lineTotal,
		})
		view.TotalCount += quantity
		view.TotalPrice = view.TotalPrice.Add(lineTotal)
	}

	return view, nil
}

// Count returns the number of distinct products in the cart.
func (s *cartService) Count(ctx context.Context, userID int64) (int, error) {
	count, err := s.carts.Count(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count cart: %w", err)
	}
	return count, nil
}
