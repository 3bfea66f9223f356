package service

import (
	"context"
	"fmt"

	"freshmart/internal/model"
	"freshmart/internal/repository"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, logger zerolog.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// getOwned fetches an order and verifies ownership. A foreign order id is
// reported as not found, never as a permission problem.
func (s *orderService) getOwned(ctx context.Context, userID int64, orderID string) (*model.Order, []model.OrderLine, error) {
	order, lines, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil || order.UserID != userID {
		return nil, nil, model.ErrOrderNotFound
	}
	return order, lines, nil
}

// GetByID retrieves one of the user's orders with its lines.
func (s *orderService) GetByID(ctx context.Context, userID int64, orderID string) (*OrderDetail, error) {
	order, lines, err := s.getOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: *order, Lines: lines}, nil
}

// ListByUser retrieves the user's orders, newest first.
func (s *orderService) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Review stores per-line comments on a delivered order and moves it to
// the reviewed state.
func (s *orderService) Review(ctx context.Context, userID int64, orderID string, comments map[int64]string) error {
	order, lines, err := s.getOwned(ctx, userID, orderID)
	if err != nil {
		return err
	}

	if order.Status != model.OrderStatusDelivered {
		s.logger.Warn().
			Str("order_id", orderID).
			Str("status", string(order.Status)).
			Msg("review rejected: order not delivered")
		return model.ErrOrderState
	}

	inOrder := make(map[int64]bool, len(lines))
	for _, line := range lines {
		inOrder[line.ProductID] = true
	}

	for productID, comment := range comments {
		if !inOrder[productID] {
			return model.ErrProductNotFound
		}
		if comment == "" {
			continue
		}
		if err := s.orderRepo.SetLineComment(ctx, orderID, productID, comment); err != nil {
			return fmt.Errorf("failed to store comment: %w", err)
		}
	}

	ok, err := s.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusDelivered, model.OrderStatusReviewed)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if !ok {
		return model.ErrOrderState
	}

	s.logger.Info().Str("order_id", orderID).Msg("order reviewed")
	return nil
}
