package service

import (
	"context"
	"fmt"

	"freshmart/internal/model"
	"freshmart/internal/payment"
	"freshmart/internal/repository"

	"github.com/rs/zerolog"
)

// paymentService implements PaymentService.
type paymentService struct {
	orderRepo repository.OrderRepository
	gateway   payment.Gateway
	logger    zerolog.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(orderRepo repository.OrderRepository, gateway payment.Gateway, logger zerolog.Logger) PaymentService {
	return &paymentService{
		orderRepo: orderRepo,
		gateway:   gateway,
		logger:    logger.With().Str("service", "payment").Logger(),
	}
}

// getOwned fetches an order and verifies ownership.
func (s *paymentService) getOwned(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	order, _, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil || order.UserID != userID {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// Initiate registers the order with the gateway and returns the redirect URL.
func (s *paymentService) Initiate(ctx context.Context, userID int64, orderID string) (string, error) {
	order, err := s.getOwned(ctx, userID, orderID)
	if err != nil {
		return "", err
	}

	if order.PayMethod != model.PayMethodGateway {
		return "", model.ErrOrderState
	}
	if order.Status != model.OrderStatusPendingPayment {
		return "", model.ErrOrderState
	}

	subject := fmt.Sprintf("freshmart order %s", order.ID)
	payURL, err := s.gateway.Pay(ctx, order.ID, order.TotalPayable(), subject)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("payment initiation failed")
		return "", model.ErrGatewayUnavailable
	}

	s.logger.Info().Str("order_id", order.ID).Msg("payment initiated")
	return payURL, nil
}

// Confirm polls the gateway and transitions the order to paid on a
// confirmed trade. Confirmations are idempotent: once paid, further calls
// report the current status without touching the gateway result again.
func (s *paymentService) Confirm(ctx context.Context, userID int64, orderID string) (model.OrderStatus, error) {
	order, err := s.getOwned(ctx, userID, orderID)
	if err != nil {
		return "", err
	}

	if order.Status != model.OrderStatusPendingPayment {
		return order.Status, nil
	}

	result, err := s.gateway.Query(ctx, order.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("trade query failed")
		return "", model.ErrGatewayUnavailable
	}

	if !result.Paid() {
		s.logger.Debug().
			Str("order_id", order.ID).
			Str("code", result.Code).
			Str("trade_status", result.TradeStatus).
			Msg("payment not confirmed, status unchanged")
		return order.Status, nil
	}

	ok, err := s.orderRepo.MarkPaid(ctx, order.ID, result.TradeNo)
	if err != nil {
		return "", fmt.Errorf("failed to mark order paid: %w", err)
	}
	if !ok {
		// Another confirmation won; the order is already paid.
		s.logger.Debug().Str("order_id", order.ID).Msg("order already transitioned")
	}

	return model.OrderStatusPaid, nil
}
