package expense

import (
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared/strategy"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DividedStrategy splits the pool evenly across items. Every item but the
// last gets the cent-truncated share; the last item takes the remainder.
type DividedStrategy struct {
	strategy.Descriptor
}

// NewDividedStrategy creates the divided distribution strategy
func NewDividedStrategy() *DividedStrategy {
	return &DividedStrategy{
		Descriptor: strategy.NewDescriptor(
			strategy.DistributionDivided,
			"Split the amount evenly across all items, remainder on the last item",
		),
	}
}

// Shares returns count shares summing exactly to amount
func (s *DividedStrategy) Shares(amount decimal.Decimal, count int) []decimal.Decimal {
	return valueobject.SplitEven(amount, count)
}

// EachStrategy charges the full amount to every item
type EachStrategy struct {
	strategy.Descriptor
}

// NewEachStrategy creates the per-item distribution strategy
func NewEachStrategy() *EachStrategy {
	return &EachStrategy{
		Descriptor: strategy.NewDescriptor(
			strategy.DistributionEach,
			"Charge the full amount to every item",
		),
	}
}

// Shares returns count copies of amount
func (s *EachStrategy) Shares(amount decimal.Decimal, count int) []decimal.Decimal {
	if count <= 0 {
		return nil
	}
	shares := make([]decimal.Decimal, count)
	for i := range shares {
		shares[i] = amount
	}
	return shares
}

var (
	dividedStrategy = NewDividedStrategy()
	eachStrategy    = NewEachStrategy()
)

// StrategyFor returns the strategy implementing method. Unknown methods
// fall back to divided.
func StrategyFor(method strategy.DistributionMethod) strategy.ExpenseDistributionStrategy {
	if method == strategy.DistributionEach {
		return eachStrategy
	}
	return dividedStrategy
}

// Strategies lists the available distribution strategies
func Strategies() []strategy.ExpenseDistributionStrategy {
	return []strategy.ExpenseDistributionStrategy{dividedStrategy, eachStrategy}
}
