package trade

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/cart"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared/strategy"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared/valueobject"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/trade"
	"github.com/neyamat7/pos-inventory-sub000/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

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

func money(s string) valueobject.LenientDecimal {
	return valueobject.NewLenientDecimal(decimal.RequireFromString(s))
}

func boxInput(product, owner string) CartItemInput {
	return CartItemInput{
		ProductID:    product,
		OwnerID:      owner,
		ProductName:  "Mango " + product,
		UnitCost:     money("100"),
		QuantityKind: "box",
		BoxQuantity:  2,
	}
}

func pieceInput(product, owner string) CartItemInput {
	return CartItemInput{
		ProductID:     product,
		OwnerID:       owner,
		UnitCost:      money("10"),
		QuantityKind:  "piece",
		PieceQuantity: 5,
	}
}

func newTestService(t *testing.T, opts ...CartServiceOption) (*CartService, *MockOrderRepository, *cache.InMemoryCartStore) {
	t.Helper()
	store := cache.NewInMemoryCartStore(0)
	t.Cleanup(func() { _ = store.Close() })
	orders := new(MockOrderRepository)
	svc := NewCartService(store, orders, opts...)
	svc.newID = func() string { return "session-1" }
	return svc, orders, store
}

func TestCartService_NewSession(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and stores an empty session", func(t *testing.T) {
		svc, _, store := newTestService(t)

		resp, err := svc.NewSession(ctx, "sale")
		require.NoError(t, err)
		assert.Equal(t, "session-1", resp.SessionID)
		assert.Equal(t, "sale", resp.Type)
		assert.Empty(t, resp.Items)
		assert.Equal(t, 1, store.Size())
	})

	t.Run("unknown type falls back to purchase", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		resp, err := svc.NewSession(ctx, "barter")
		require.NoError(t, err)
		assert.Equal(t, "purchase", resp.Type)
	})

	t.Run("default id generator yields ulids", func(t *testing.T) {
		id := newSessionID()
		assert.Len(t, id, 26)
		assert.NotEqual(t, id, newSessionID())
	})
}

func TestCartService_GetCart(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown session reads as empty cart", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		resp, err := svc.GetCart(ctx, "missing")
		require.NoError(t, err)
		assert.Equal(t, "missing", resp.SessionID)
		assert.Empty(t, resp.Items)
		assert.True(t, resp.Summary.Grand.GrandTotal.IsZero())
	})

	t.Run("blank session id is rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.GetCart(ctx, "  ")
		require.Error(t, err)
	})
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("adds item and redistributes stored expenses", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.AddItem(ctx, "s", boxInput("p1", "o1"))
		require.NoError(t, err)
		_, err = svc.DistributeExpenses(ctx, "s", DistributeExpensesRequest{
			Expenses: []ExpenseRequestInput{{Category: "labour", Amount: money("100"), Strategy: "divided"}},
		})
		require.NoError(t, err)

		resp, err := svc.AddItem(ctx, "s", boxInput("p2", "o1"))
		require.NoError(t, err)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "50", resp.Items[0].Expenses.Labour.String())
		assert.Equal(t, "50", resp.Items[1].Expenses.Labour.String())
	})

	t.Run("duplicate item is rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.AddItem(ctx, "s", boxInput("p1", "o1"))
		require.NoError(t, err)
		_, err = svc.AddItem(ctx, "s", boxInput("p1", "o1"))

		var rej *CartRejectedError
		require.ErrorAs(t, err, &rej)
		assert.Equal(t, cart.ReasonDuplicateCartItem, rej.Result.Reason)
		assert.Equal(t, "p1", rej.Result.ProductID)
	})

	t.Run("piece item replaces the cart", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.AddItem(ctx, "s", boxInput("p1", "o1"))
		require.NoError(t, err)
		resp, err := svc.AddItem(ctx, "s", pieceInput("p2", "o1"))
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "p2", resp.Items[0].ProductID)
	})

	t.Run("box item cannot join a piece cart", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.AddItem(ctx, "s", pieceInput("p1", "o1"))
		require.NoError(t, err)
		_, err = svc.AddItem(ctx, "s", boxInput("p2", "o1"))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "MIXED_QUANTITY_KIND", domainErr.Code)
	})

	t.Run("full cart rejects new lines", func(t *testing.T) {
		svc, _, _ := newTestService(t, WithMaxItems(1))

		_, err := svc.AddItem(ctx, "s", boxInput("p1", "o1"))
		require.NoError(t, err)
		_, err = svc.AddItem(ctx, "s", boxInput("p2", "o1"))
		assert.ErrorIs(t, err, shared.ErrCartFull)
	})
}

// racingStore runs race right before delegating a Save, standing in for
// another request that saves the same session in between
type racingStore struct {
	*cache.InMemoryCartStore
	race   func()
	repeat bool
}

func (r *racingStore) Save(ctx context.Context, session *trade.CartSession) error {
	if race := r.race; race != nil {
		if !r.repeat {
			r.race = nil
		}
		race()
	}
	return r.InMemoryCartStore.Save(ctx, session)
}

func TestCartService_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()

	t.Run("replays a mutation that lost a race", func(t *testing.T) {
		inner := cache.NewInMemoryCartStore(0)
		defer inner.Close()
		store := &racingStore{InMemoryCartStore: inner}
		svc := NewCartService(store, new(MockOrderRepository))

		_, err := svc.AddItem(ctx, "s", boxInput("p1", "o1"))
		require.NoError(t, err)

		store.race = func() {
			other, err := inner.Load(ctx, "s")
			require.NoError(t, err)
			other.Clear()
			require.NoError(t, inner.Save(ctx, other))
		}

		resp, err := svc.AddItem(ctx, "s", boxInput("p2", "o1"))
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "p2", resp.Items[0].ProductID)
		assert.Equal(t, int64(3), resp.Version)
	})

	t.Run("gives up after repeated conflicts", func(t *testing.T) {
		inner := cache.NewInMemoryCartStore(0)
		defer inner.Close()
		store := &racingStore{InMemoryCartStore: inner, repeat: true}
		svc := NewCartService(store, new(MockOrderRepository))

		_, err := svc.AddItem(ctx, "s", boxInput("p1", "o1"))
		require.NoError(t, err)

		store.race = func() {
			other, err := inner.Load(ctx, "s")
			require.NoError(t, err)
			require.NoError(t, inner.Save(ctx, other))
		}

		_, err = svc.ClearCart(ctx, "s")
		assert.ErrorIs(t, err, shared.ErrConcurrentModification)
	})

	t.Run("parallel adds lose no item", func(t *testing.T) {
		svc, _, store := newTestService(t)

		const workers = 20
		var wg sync.WaitGroup
		errs := make([]error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.AddItem(ctx, "s", boxInput(fmt.Sprintf("p%d", i), "o1"))
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, shared.ErrConcurrentModification)
		}

		stored, err := store.Load(ctx, "s")
		require.NoError(t, err)
		assert.Len(t, stored.Items, succeeded)
		assert.Equal(t, int64(succeeded), stored.Version)
	})
}

func TestCartService_UpdateAndRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("update keeps distributed expenses consistent", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.AddItem(ctx, "s", boxInput("p1", "o1"))
		require.NoError(t, err)
		_, err = svc.DistributeExpenses(ctx, "s", DistributeExpensesRequest{
			Expenses: []ExpenseRequestInput{{Category: "van_fare", Amount: money("30"), Strategy: "each"}},
		})
		require.NoError(t, err)

		in := boxInput("p1", "o1")
		in.BoxQuantity = 5
		resp, err := svc.UpdateItem(ctx, "s", in)
		require.NoError(t, err)
		assert.Equal(t, 5, resp.Items[0].BoxQuantity)
		assert.Equal(t, "30", resp.Items[0].Expenses.VanFare.String())
	})

	t.Run("update of missing item is rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.UpdateItem(ctx, "s", boxInput("p1", "o1"))
		var rej *CartRejectedError
		require.ErrorAs(t, err, &rej)
		assert.Equal(t, cart.ReasonItemNotFound, rej.Result.Reason)
	})

	t.Run("remove redistributes over remaining items", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, _ = svc.AddItem(ctx, "s", boxInput("p1", "o1"))
		_, _ = svc.AddItem(ctx, "s", boxInput("p2", "o1"))
		_, err := svc.DistributeExpenses(ctx, "s", DistributeExpensesRequest{
			Expenses: []ExpenseRequestInput{{Category: "labour", Amount: money("100")}},
		})
		require.NoError(t, err)

		resp, err := svc.RemoveItem(ctx, "s", cart.ItemKey{ProductID: "p1", OwnerID: "o1"})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "100", resp.Items[0].Expenses.Labour.String())
	})

	t.Run("remove of missing item is rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.RemoveItem(ctx, "s", cart.ItemKey{ProductID: "p1", OwnerID: "o1"})
		assert.Error(t, err)
	})

	t.Run("clear drops items and expenses", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, _ = svc.AddItem(ctx, "s", boxInput("p1", "o1"))

		resp, err := svc.ClearCart(ctx, "s")
		require.NoError(t, err)
		assert.Empty(t, resp.Items)
		assert.Empty(t, resp.Expenses)
	})
}

func TestCartService_DistributeExpenses(t *testing.T) {
	ctx := context.Background()

	t.Run("uses default strategy when none given", func(t *testing.T) {
		svc, _, _ := newTestService(t, WithDefaultStrategy(strategy.DistributionEach))
		_, _ = svc.AddItem(ctx, "s", boxInput("p1", "o1"))
		_, _ = svc.AddItem(ctx, "s", boxInput("p2", "o1"))

		resp, err := svc.DistributeExpenses(ctx, "s", DistributeExpensesRequest{
			Expenses: []ExpenseRequestInput{{Category: "mosque_fee", Amount: money("7")}},
		})
		require.NoError(t, err)
		assert.Equal(t, "7", resp.Items[0].Expenses.MosqueFee.String())
		assert.Equal(t, "7", resp.Items[1].Expenses.MosqueFee.String())
		assert.Equal(t, "14.00", resp.Summary.Grand.TotalExpenses.StringFixed(2))
	})

	t.Run("divided remainder lands on last item", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		for _, p := range []string{"p1", "p2", "p3"} {
			_, err := svc.AddItem(ctx, "s", boxInput(p, "o1"))
			require.NoError(t, err)
		}

		resp, err := svc.DistributeExpenses(ctx, "s", DistributeExpensesRequest{
			Expenses: []ExpenseRequestInput{{Category: "labour", Amount: money("100"), Strategy: "divided"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "33.33", resp.Items[0].Expenses.Labour.String())
		assert.Equal(t, "33.33", resp.Items[1].Expenses.Labour.String())
		assert.Equal(t, "33.34", resp.Items[2].Expenses.Labour.String())
	})

	t.Run("omitted category resets to zero", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, _ = svc.AddItem(ctx, "s", boxInput("p1", "o1"))
		_, _ = svc.DistributeExpenses(ctx, "s", DistributeExpensesRequest{
			Expenses: []ExpenseRequestInput{{Category: "labour", Amount: money("10")}},
		})

		resp, err := svc.DistributeExpenses(ctx, "s", DistributeExpensesRequest{})
		require.NoError(t, err)
		assert.True(t, resp.Items[0].Expenses.Labour.IsZero())
	})
}

func TestCartService_Summary(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	in := boxInput("p1", "o1")
	in.UnitCost = money("0")
	_, err := svc.AddItem(ctx, "s", in)
	require.NoError(t, err)

	resp, err := svc.Summary(ctx, "s")
	require.NoError(t, err)
	assert.False(t, resp.Validation.OK)
	assert.Equal(t, cart.ReasonInvalidUnitCost, resp.Validation.Reason)
	require.Len(t, resp.Payload.Owners, 1)
}

func TestCartService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("stores order and discards session", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		svc, orders, store := newTestService(t, WithLogger(zap.New(core)))
		_, err := svc.AddItem(ctx, "s", boxInput("p1", "o1"))
		require.NoError(t, err)
		orders.On("Save", mock.Anything, mock.AnythingOfType("*trade.Order")).Return(nil)

		resp, err := svc.Checkout(ctx, "s", CheckoutRequest{Type: "purchase", Note: "<b>paid</b> in cash"})
		require.NoError(t, err)
		assert.Equal(t, "purchase", resp.Type)
		assert.Equal(t, 1, resp.ItemCount)
		assert.Equal(t, "200.00", resp.GrandTotal)
		assert.Equal(t, "paid in cash", resp.Note)
		assert.Equal(t, 0, store.Size())
		assert.Equal(t, 1, logs.FilterMessage("Cart checked out").Len())
		orders.AssertExpectations(t)
	})

	t.Run("empty cart", func(t *testing.T) {
		svc, orders, _ := newTestService(t)

		_, err := svc.Checkout(ctx, "s", CheckoutRequest{})
		assert.ErrorIs(t, err, shared.ErrEmptyCart)
		orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("invalid cart is rejected and logged", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		svc, orders, store := newTestService(t, WithLogger(zap.New(core)))
		in := boxInput("p1", "o1")
		in.BoxQuantity = 0
		_, err := svc.AddItem(ctx, "s", in)
		require.NoError(t, err)

		_, err = svc.Checkout(ctx, "s", CheckoutRequest{})
		var rej *CartRejectedError
		require.ErrorAs(t, err, &rej)
		assert.Equal(t, cart.ReasonInsufficientBoxQuantity, rej.Result.Reason)
		assert.Equal(t, 1, store.Size())
		assert.Equal(t, 1, logs.FilterMessage("Cart rejected at checkout").Len())
		orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("repository failure keeps the session", func(t *testing.T) {
		svc, orders, store := newTestService(t)
		_, _ = svc.AddItem(ctx, "s", boxInput("p1", "o1"))
		orders.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down"))

		_, err := svc.Checkout(ctx, "s", CheckoutRequest{Type: "sale"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db down")
		assert.Equal(t, 1, store.Size())
	})
}

func TestCartService_GetOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc, orders, _ := newTestService(t)
		items := []cart.CartItem{boxInput("p1", "o1").ToCartItem()}
		order, err := trade.NewOrder(trade.CartTypeSale, "s", items, "")
		require.NoError(t, err)
		orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		resp, err := svc.GetOrder(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "sale", resp.Type)
		assert.Equal(t, "200.00", resp.GrandTotal)
	})

	t.Run("not found", func(t *testing.T) {
		svc, orders, _ := newTestService(t)
		id := uuid.New()
		orders.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.GetOrder(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
