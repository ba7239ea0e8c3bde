// Package expense apportions shared overhead pools across cart items and
// derives the totals handed to persistence.
package expense

import (
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/cart"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared/strategy"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Request asks for one expense category to be spread over the cart
type Request struct {
	Category cart.ExpenseCategory        `json:"category"`
	Amount   decimal.Decimal             `json:"amount"`
	Strategy strategy.DistributionMethod `json:"strategy"`
}

// Normalize degrades invalid input instead of failing: negative amounts
// become zero and unknown strategies become divided.
func (r Request) Normalize() Request {
	r.Amount = valueobject.NonNegative(r.Amount)
	if !r.Strategy.IsValid() {
		r.Strategy = strategy.DistributionDivided
	}
	return r
}

// Distribute returns a copy of items with the expense field of every
// requested category overwritten by its share. Categories no request names
// keep their current values. Requests for unknown categories are ignored and
// an empty cart is returned unchanged. When several requests name the same
// category the last one wins.
//
// Distribute never fails and never mutates its arguments.
func Distribute(items []cart.CartItem, requests []Request) []cart.CartItem {
	out := make([]cart.CartItem, len(items))
	copy(out, items)
	if len(out) == 0 {
		return out
	}

	for _, req := range requests {
		if !req.Category.IsValid() {
			continue
		}
		req = req.Normalize()

		shares := StrategyFor(req.Strategy).Shares(req.Amount, len(out))
		for i := range out {
			out[i].Expenses.Set(req.Category, shares[i])
		}
	}
	return out
}

// ResetExpenses returns a copy of items with every expense field zeroed
func ResetExpenses(items []cart.CartItem) []cart.CartItem {
	out := make([]cart.CartItem, len(items))
	copy(out, items)
	for i := range out {
		out[i].Expenses = cart.Expenses{}
	}
	return out
}
