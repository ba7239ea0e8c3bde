package expense

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/neyamat7/pos-inventory-sub000/internal/domain/cart"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared/strategy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItems(n int) []cart.CartItem {
	items := make([]cart.CartItem, n)
	for i := range items {
		items[i] = cart.CartItem{
			ProductID:    fmt.Sprintf("p%d", i+1),
			OwnerID:      "s1",
			QuantityKind: cart.QuantityKindBox,
			BoxQuantity:  1,
			UnitCost:     decimal.NewFromInt(10),
		}
	}
	return items
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDistribute_DividedConservesAmount(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 2000; run++ {
		n := 1 + rng.Intn(50)
		places := int32(rng.Intn(5))
		amount := decimal.New(rng.Int63n(10_000_000), -places)

		out := Distribute(makeItems(n), []Request{
			{Category: cart.ExpenseTransportation, Amount: amount, Strategy: strategy.DistributionDivided},
		})

		sum := decimal.Zero
		for _, item := range out {
			share := item.Expenses.Transportation
			require.False(t, share.IsNegative(), "amount %s over %d items", amount, n)
			sum = sum.Add(share)
		}
		require.True(t, sum.Equal(amount), "amount %s over %d items summed to %s", amount, n, sum)
	}
}

func TestDistribute_LabourScenario(t *testing.T) {
	items := makeItems(3)
	out := Distribute(items, []Request{
		{Category: cart.ExpenseLabour, Amount: dec("100"), Strategy: strategy.DistributionDivided},
	})

	require.Len(t, out, 3)
	assert.True(t, out[0].Expenses.Labour.Equal(dec("33.33")), out[0].Expenses.Labour.String())
	assert.True(t, out[1].Expenses.Labour.Equal(dec("33.33")), out[1].Expenses.Labour.String())
	assert.True(t, out[2].Expenses.Labour.Equal(dec("33.34")), out[2].Expenses.Labour.String())

	sum := out[0].Expenses.Labour.Add(out[1].Expenses.Labour).Add(out[2].Expenses.Labour)
	assert.True(t, sum.Equal(dec("100")))
}

func TestDistribute_Conservation(t *testing.T) {
	amounts := []string{"0", "0.01", "1", "10", "99.99", "100", "1234.57", "0.05"}
	for n := 1; n <= 12; n++ {
		for _, a := range amounts {
			t.Run(fmt.Sprintf("%s over %d", a, n), func(t *testing.T) {
				out := Distribute(makeItems(n), []Request{
					{Category: cart.ExpenseTransportation, Amount: dec(a), Strategy: strategy.DistributionDivided},
				})
				sum := decimal.Zero
				for _, item := range out {
					sum = sum.Add(item.Expenses.Transportation)
				}
				assert.True(t, sum.Equal(dec(a)), "sum %s", sum)
			})
		}
	}
}

func TestDistribute_EachScaling(t *testing.T) {
	out := Distribute(makeItems(4), []Request{
		{Category: cart.ExpenseVanFare, Amount: dec("25.50"), Strategy: strategy.DistributionEach},
	})

	total := decimal.Zero
	for _, item := range out {
		assert.True(t, item.Expenses.VanFare.Equal(dec("25.50")))
		total = total.Add(item.Expenses.VanFare)
	}
	assert.True(t, total.Equal(dec("102")))
}

func TestDistribute_IdempotentOverwrite(t *testing.T) {
	requests := []Request{
		{Category: cart.ExpenseLabour, Amount: dec("100"), Strategy: strategy.DistributionDivided},
		{Category: cart.ExpenseMosqueFee, Amount: dec("5"), Strategy: strategy.DistributionEach},
	}

	once := Distribute(makeItems(3), requests)
	twice := Distribute(once, requests)
	assert.Equal(t, once, twice)
}

func TestDistribute_LeavesOtherCategories(t *testing.T) {
	items := makeItems(2)
	items[0].Expenses.Transportation = dec("7")

	out := Distribute(items, []Request{
		{Category: cart.ExpenseLabour, Amount: dec("10"), Strategy: strategy.DistributionDivided},
	})
	assert.True(t, out[0].Expenses.Transportation.Equal(dec("7")))
	assert.True(t, out[1].Expenses.Transportation.IsZero())
}

func TestDistribute_DoesNotMutateInput(t *testing.T) {
	items := makeItems(2)
	_ = Distribute(items, []Request{
		{Category: cart.ExpenseLabour, Amount: dec("10"), Strategy: strategy.DistributionDivided},
	})
	assert.True(t, items[0].Expenses.Labour.IsZero())
	assert.True(t, items[1].Expenses.Labour.IsZero())
}

func TestDistribute_Degrades(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		out := Distribute(nil, []Request{{Category: cart.ExpenseLabour, Amount: dec("10")}})
		assert.Empty(t, out)
	})

	t.Run("negative amount becomes zero", func(t *testing.T) {
		items := makeItems(2)
		items[0].Expenses.Labour = dec("4")
		out := Distribute(items, []Request{
			{Category: cart.ExpenseLabour, Amount: dec("-10"), Strategy: strategy.DistributionEach},
		})
		assert.True(t, out[0].Expenses.Labour.IsZero())
		assert.True(t, out[1].Expenses.Labour.IsZero())
	})

	t.Run("unknown strategy divides", func(t *testing.T) {
		out := Distribute(makeItems(2), []Request{
			{Category: cart.ExpenseLabour, Amount: dec("10"), Strategy: "weighted"},
		})
		assert.True(t, out[0].Expenses.Labour.Equal(dec("5")))
		assert.True(t, out[1].Expenses.Labour.Equal(dec("5")))
	})

	t.Run("unknown category ignored", func(t *testing.T) {
		out := Distribute(makeItems(2), []Request{
			{Category: "parking", Amount: dec("10"), Strategy: strategy.DistributionEach},
		})
		for _, item := range out {
			assert.True(t, item.Expenses.Total().IsZero())
		}
	})

	t.Run("last request for a category wins", func(t *testing.T) {
		out := Distribute(makeItems(2), []Request{
			{Category: cart.ExpenseLabour, Amount: dec("10"), Strategy: strategy.DistributionEach},
			{Category: cart.ExpenseLabour, Amount: dec("4"), Strategy: strategy.DistributionDivided},
		})
		assert.True(t, out[0].Expenses.Labour.Equal(dec("2")))
		assert.True(t, out[1].Expenses.Labour.Equal(dec("2")))
	})
}

func TestResetExpenses(t *testing.T) {
	items := Distribute(makeItems(2), []Request{
		{Category: cart.ExpenseLabour, Amount: dec("10"), Strategy: strategy.DistributionEach},
	})
	out := ResetExpenses(items)
	assert.True(t, out[0].Expenses.Total().IsZero())
	assert.True(t, items[0].Expenses.Labour.Equal(dec("10")))
}

func TestStrategyFor(t *testing.T) {
	assert.Equal(t, strategy.DistributionDivided, StrategyFor(strategy.DistributionDivided).Method())
	assert.Equal(t, strategy.DistributionEach, StrategyFor(strategy.DistributionEach).Method())
	assert.Equal(t, strategy.DistributionDivided, StrategyFor("unknown").Method())

	names := make([]string, 0)
	for _, s := range Strategies() {
		assert.NotEmpty(t, s.Description())
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"divided", "each"}, names)
	assert.Nil(t, NewEachStrategy().Shares(dec("1"), 0))
}
