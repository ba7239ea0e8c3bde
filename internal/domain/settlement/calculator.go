// Package settlement computes what is owed to a supplier for sold lots.
package settlement

import (
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LotSettlementInput carries the sales figures of one lot plus the discount
// the buyer negotiated on it
type LotSettlementInput struct {
	TotalSell          decimal.Decimal `json:"total_sell"`
	TotalExpense       decimal.Decimal `json:"total_expense"`
	ExtraExpense       decimal.Decimal `json:"extra_expense"`
	OriginalProfit     decimal.Decimal `json:"original_profit"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// LotSettlement holds the derived figures of one lot
type LotSettlement struct {
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	AdjustedProfit decimal.Decimal `json:"adjusted_profit"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	BaseExpense    decimal.Decimal `json:"base_expense"`
}

// ComputeLotSettlement derives discount, adjusted profit and payable amount.
// DiscountPercentage must already lie in [0, 100]; see ClampPercentage.
// PaidAmount never goes below zero.
func ComputeLotSettlement(lot LotSettlementInput) LotSettlement {
	discount := valueobject.Percentage(lot.TotalSell, lot.DiscountPercentage)
	adjusted := lot.OriginalProfit.Sub(discount)
	paid := lot.TotalSell.Sub(lot.TotalExpense).Sub(adjusted)

	return LotSettlement{
		DiscountAmount: discount,
		AdjustedProfit: adjusted,
		PaidAmount:     valueobject.NonNegative(paid),
		BaseExpense:    lot.TotalExpense.Sub(lot.ExtraExpense),
	}
}

// ClampPercentage limits a user supplied discount percentage to [0, 100]
func ClampPercentage(pct decimal.Decimal) decimal.Decimal {
	return valueobject.ClampPercentage(pct)
}

// PaymentTender is what the buyer puts towards a payment: money already held
// on the supplier's balance and fresh cash
type PaymentTender struct {
	AmountFromBalance decimal.Decimal `json:"amount_from_balance"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
}

// PaymentSummary aggregates every selected lot of one payment
type PaymentSummary struct {
	Lots             []LotSettlement `json:"lots"`
	PayableAmount    decimal.Decimal `json:"payable_amount"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
	TotalLotsExpense decimal.Decimal `json:"total_lots_expense"`
	NeedToPayDue     decimal.Decimal `json:"need_to_pay_due"`
}

// AggregateSettlement settles every lot and sums the results. Any surplus of
// tender over the payable amount is not reported; NeedToPayDue floors at zero.
func AggregateSettlement(lots []LotSettlementInput, tender PaymentTender) PaymentSummary {
	summary := PaymentSummary{
		Lots:             make([]LotSettlement, 0, len(lots)),
		PayableAmount:    decimal.Zero,
		TotalProfit:      decimal.Zero,
		TotalLotsExpense: decimal.Zero,
	}

	for _, lot := range lots {
		s := ComputeLotSettlement(lot)
		summary.Lots = append(summary.Lots, s)
		summary.PayableAmount = summary.PayableAmount.Add(s.PaidAmount)
		summary.TotalProfit = summary.TotalProfit.Add(s.AdjustedProfit)
		summary.TotalLotsExpense = summary.TotalLotsExpense.Add(lot.TotalExpense)
	}

	due := summary.PayableAmount.Sub(tender.AmountFromBalance).Sub(tender.PaidAmount)
	summary.NeedToPayDue = valueobject.NonNegative(due)
	return summary
}

// Round returns a copy with every amount rounded to cents
func (s PaymentSummary) Round() PaymentSummary {
	out := PaymentSummary{
		Lots:             make([]LotSettlement, len(s.Lots)),
		PayableAmount:    valueobject.RoundMoney(s.PayableAmount),
		TotalProfit:      valueobject.RoundMoney(s.TotalProfit),
		TotalLotsExpense: valueobject.RoundMoney(s.TotalLotsExpense),
		NeedToPayDue:     valueobject.RoundMoney(s.NeedToPayDue),
	}
	for i, l := range s.Lots {
		out.Lots[i] = LotSettlement{
			DiscountAmount: valueobject.RoundMoney(l.DiscountAmount),
			AdjustedProfit: valueobject.RoundMoney(l.AdjustedProfit),
			PaidAmount:     valueobject.RoundMoney(l.PaidAmount),
			BaseExpense:    valueobject.RoundMoney(l.BaseExpense),
		}
	}
	return out
}
