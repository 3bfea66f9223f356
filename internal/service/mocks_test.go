package service

import (
	"context"

	"freshmart/internal/model"
	"freshmart/internal/payment"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetInTx(ctx context.Context, tx pgx.Tx, id int64) (*model.Product, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, tx pgx.Tx, id int64, expectedStock, quantity int) (bool, error) {
	args := m.Called(ctx, tx, id, expectedStock, quantity)
	return args.Bool(0), args.Error(1)
}

// MockOrderRepository is a mock implementation of repository.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateOrderLines(ctx context.Context, tx pgx.Tx, lines []model.OrderLine) error {
	args := m.Called(ctx, tx, lines)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*model.Order, []model.OrderLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var lines []model.OrderLine
	if args.Get(1) != nil {
		lines = args.Get(1).([]model.OrderLine)
	}
	return args.Get(0).(*model.Order), lines, args.Error(2)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) MarkPaid(ctx context.Context, id, tradeNo string) (bool, error) {
	args := m.Called(ctx, id, tradeNo)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) SetLineComment(ctx context.Context, orderID string, productID int64, comment string) error {
	args := m.Called(ctx, orderID, productID, comment)
	return args.Error(0)
}

// MockAddressRepository is a mock implementation of repository.AddressRepository.
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) GetByID(ctx context.Context, id, userID int64) (*model.Address, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Address), args.Error(1)
}

// MockCartStore is a mock implementation of cart.Store.
type MockCartStore struct {
	mock.Mock
}

func (m *MockCartStore) Add(ctx context.Context, userID, productID int64, delta int) (int, error) {
	args := m.Called(ctx, userID, productID, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockCartStore) Set(ctx context.Context, userID, productID int64, quantity int) error {
	args := m.Called(ctx, userID, productID, quantity)
	return args.Error(0)
}

func (m *MockCartStore) Remove(ctx context.Context, userID, productID int64) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockCartStore) RemoveMany(ctx context.Context, userID int64, productIDs []int64) error {
	args := m.Called(ctx, userID, productIDs)
	return args.Error(0)
}

func (m *MockCartStore) Get(ctx context.Context, userID, productID int64) (int, bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockCartStore) List(ctx context.Context, userID int64) (map[int64]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

func (m *MockCartStore) Count(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// MockGateway is a mock implementation of payment.Gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Pay(ctx context.Context, outTradeNo string, amount decimal.Decimal, subject string) (string, error) {
	args := m.Called(ctx, outTradeNo, amount, subject)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) Query(ctx context.Context, outTradeNo string) (payment.TradeResult, error) {
	args := m.Called(ctx, outTradeNo)
	return args.Get(0).(payment.TradeResult), args.Error(1)
}

// MockTx is a minimal mock implementation of pgx.Tx. Begin returns the
// configured nested transaction, standing in for a savepoint.
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx - these are not used in the tests.
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }
