package expense

import (
	"testing"

	"github.com/neyamat7/pos-inventory-sub000/internal/domain/cart"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCart() []cart.CartItem {
	items := []cart.CartItem{
		{
			ProductID:          "mango",
			OwnerID:            "s1",
			QuantityKind:       cart.QuantityKindCrate,
			CrateType1Quantity: 2,
			CrateType2Quantity: 1,
			UnitCost:           dec("100"),
			IsDiscountable:     true,
			DiscountAmount:     dec("10"),
		},
		{
			ProductID:       "apple",
			OwnerID:         "s2",
			QuantityKind:    cart.QuantityKindBox,
			BoxQuantity:     4,
			UnitCost:        dec("25"),
			AllowCommission: true,
			CommissionRate:  dec("10"),
		},
		{
			ProductID:    "banana",
			OwnerID:      "s1",
			QuantityKind: cart.QuantityKindBox,
			BoxQuantity:  1,
			UnitCost:     dec("50"),
		},
	}
	return Distribute(items, []Request{
		{Category: cart.ExpenseLabour, Amount: dec("100"), Strategy: strategy.DistributionDivided},
		{Category: cart.ExpenseMosqueFee, Amount: dec("5"), Strategy: strategy.DistributionEach},
	})
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleCart())
	require.Len(t, s.PerItem, 3)

	mango := s.PerItem[0]
	assert.Equal(t, 3, mango.Quantity)
	assert.True(t, mango.Subtotal.Equal(dec("300")))
	assert.True(t, mango.TotalExpenses.Equal(dec("38.33")))
	assert.True(t, mango.Discount.Equal(dec("10")))
	assert.True(t, mango.LineTotal.Equal(dec("328.33")))

	apple := s.PerItem[1]
	assert.True(t, apple.Commission.Equal(dec("10")))

	g := s.Grand
	assert.True(t, g.Expenses.Labour.Equal(dec("100")))
	assert.True(t, g.Expenses.MosqueFee.Equal(dec("15")))
	assert.True(t, g.TotalExpenses.Equal(dec("115")))
	assert.True(t, g.TotalSubtotal.Equal(dec("450")))
	assert.True(t, g.TotalDiscount.Equal(dec("10")))
	assert.True(t, g.TotalCommission.Equal(dec("10")))
	assert.True(t, g.GrandTotal.Equal(dec("555")))
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Empty(t, s.PerItem)
	assert.True(t, s.Grand.GrandTotal.IsZero())
	assert.True(t, s.Grand.TotalExpenses.IsZero())
}

func TestSummary_Round(t *testing.T) {
	items := []cart.CartItem{{
		ProductID:    "p",
		OwnerID:      "s",
		QuantityKind: cart.QuantityKindBox,
		BoxQuantity:  3,
		UnitCost:     dec("0.3333"),
	}}
	s := Summarize(items)
	assert.True(t, s.PerItem[0].Subtotal.Equal(dec("0.9999")))

	r := s.Round()
	assert.True(t, r.PerItem[0].Subtotal.Equal(dec("1")))
	assert.True(t, r.Grand.TotalSubtotal.Equal(dec("1")))
	// original keeps full precision
	assert.True(t, s.Grand.TotalSubtotal.Equal(dec("0.9999")))
}

func TestBuildPayload(t *testing.T) {
	p := BuildPayload(sampleCart())

	require.Len(t, p.Owners, 2)
	assert.Equal(t, "s1", p.Owners[0].OwnerID)
	assert.Equal(t, "s2", p.Owners[1].OwnerID)

	s1 := p.Owners[0]
	require.Len(t, s1.Items, 2)
	assert.Equal(t, "mango", s1.Items[0].ProductID)
	assert.Equal(t, "banana", s1.Items[1].ProductID)
	// 38.33 + 38.34
	assert.True(t, s1.TotalExpenses.Equal(dec("76.67")), s1.TotalExpenses.String())
	assert.True(t, s1.Subtotal.Equal(dec("350")))

	assert.True(t, p.TotalExpenses.Equal(dec("115")))
	assert.True(t, p.Totals.GrandTotal.Equal(dec("555")))
}

func TestBuildPayload_Empty(t *testing.T) {
	p := BuildPayload(nil)
	assert.NotNil(t, p.Owners)
	assert.Empty(t, p.Owners)
	assert.True(t, p.TotalExpenses.IsZero())
}
