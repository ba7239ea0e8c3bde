package trade

import (
	"errors"
	"testing"

	"github.com/neyamat7/pos-inventory-sub000/internal/domain/cart"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	t.Run("builds payload", func(t *testing.T) {
		items := []cart.CartItem{box("p1", "s1"), box("p2", "s2")}
		items[0].Expenses.Labour = decimal.NewFromInt(5)

		order, err := NewOrder(CartTypePurchase, "abc", items, "  morning lot ")
		require.NoError(t, err)
		assert.Equal(t, 2, order.ItemCount)
		assert.Len(t, order.Payload.Owners, 2)
		assert.True(t, order.TotalExpenses.Equal(decimal.NewFromInt(5)))
		assert.True(t, order.GrandTotal.Equal(decimal.NewFromInt(45)))
		assert.Equal(t, "morning lot", order.Note)
	})

	t.Run("empty cart", func(t *testing.T) {
		_, err := NewOrder(CartTypeSale, "abc", nil, "")
		assert.True(t, errors.Is(err, shared.ErrEmptyCart))
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := NewOrder("refund", "abc", []cart.CartItem{box("p1", "s1")}, "")
		assert.Error(t, err)
	})

	t.Run("invalid items", func(t *testing.T) {
		item := box("p1", "s1")
		item.UnitCost = decimal.Zero
		_, err := NewOrder(CartTypePurchase, "abc", []cart.CartItem{item}, "")

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_UNIT_COST", domainErr.Code)
	})
}
