package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/settlement"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/trade"
	"github.com/neyamat7/pos-inventory-sub000/internal/interfaces/http/dto"
	"github.com/neyamat7/pos-inventory-sub000/internal/interfaces/http/router"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(registrars ...router.RouteRegistrar) *gin.Engine {
	engine := router.NewEngine(router.EngineConfig{ServiceName: "test", MaxBodySize: 1 << 20}, zap.NewNop())
	router.NewRouter(engine).Register(registrars...).Setup()
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// envelope decodes a response keeping data raw for a second decode
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

// MockOrderRepository is a mock implementation of trade.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

// MockLotRepository is a mock implementation of settlement.LotRepository
type MockLotRepository struct {
	mock.Mock
}

func (m *MockLotRepository) FindOutstandingBySupplier(ctx context.Context, supplierID string) ([]*settlement.Lot, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*settlement.Lot), args.Error(1)
}

func (m *MockLotRepository) FindByIDs(ctx context.Context, supplierID string, ids []uuid.UUID) ([]*settlement.Lot, error) {
	args := m.Called(ctx, supplierID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*settlement.Lot), args.Error(1)
}

func (m *MockLotRepository) Save(ctx context.Context, lot *settlement.Lot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockLotRepository) MarkSettled(ctx context.Context, supplierID string, lots []*settlement.Lot) (int64, error) {
	args := m.Called(ctx, supplierID, lots)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentRepository is a mock implementation of settlement.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *settlement.SupplierPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindBySupplier(ctx context.Context, supplierID string) ([]*settlement.SupplierPayment, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*settlement.SupplierPayment), args.Error(1)
}

// MockStore is a mock implementation of settlement.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CommitPayment(ctx context.Context, payment *settlement.SupplierPayment, lots []*settlement.Lot) error {
	args := m.Called(ctx, payment, lots)
	return args.Error(0)
}
