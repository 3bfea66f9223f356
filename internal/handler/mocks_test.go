package handler

import (
	"context"

	"freshmart/internal/model"
	"freshmart/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockProductService is a mock implementation of service.ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

// MockCartService is a mock implementation of service.CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Add(ctx context.Context, userID, productID int64, delta int) (int, error) {
	args := m.Called(ctx, userID, productID, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockCartService) Update(ctx context.Context, userID, productID int64, quantity int) error {
	args := m.Called(ctx, userID, productID, quantity)
	return args.Error(0)
}

func (m *MockCartService) Remove(ctx context.Context, userID, productID int64) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockCartService) List(ctx context.Context, userID int64) (*service.CartView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CartView), args.Error(1)
}

func (m *MockCartService) Count(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// MockCheckoutService is a mock implementation of service.CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Place(ctx context.Context, userID int64, productIDs []int64) (*service.CheckoutPreview, error) {
	args := m.Called(ctx, userID, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CheckoutPreview), args.Error(1)
}

func (m *MockCheckoutService) Commit(ctx context.Context, userID, addressID int64, payMethod model.PayMethod, productIDs []int64) (*model.Order, error) {
	args := m.Called(ctx, userID, addressID, payMethod, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) GetByID(ctx context.Context, userID int64, orderID string) (*service.OrderDetail, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OrderDetail), args.Error(1)
}

func (m *MockOrderService) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) Review(ctx context.Context, userID int64, orderID string, comments map[int64]string) error {
	args := m.Called(ctx, userID, orderID, comments)
	return args.Error(0)
}

// MockPaymentService is a mock implementation of service.PaymentService.
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Initiate(ctx context.Context, userID int64, orderID string) (string, error) {
	args := m.Called(ctx, userID, orderID)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentService) Confirm(ctx context.Context, userID int64, orderID string) (model.OrderStatus, error) {
	args := m.Called(ctx, userID, orderID)
	return args.Get(0).(model.OrderStatus), args.Error(1)
}
