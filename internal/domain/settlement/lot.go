package settlement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Lot is the stock a supplier delivered in one purchase, with the sales
// figures accumulated since. A lot is outstanding until a payment settles it.
type Lot struct {
	shared.BaseEntity
	SupplierID     string
	ProductID      string
	LotName        string
	TotalSell      decimal.Decimal
	TotalExpense   decimal.Decimal
	ExtraExpense   decimal.Decimal
	OriginalProfit decimal.Decimal
	Settled        bool
	SettledAt      *time.Time
	PaymentID      *uuid.UUID
}

// NewLot creates an outstanding lot
func NewLot(supplierID, productID, lotName string, totalSell, totalExpense, extraExpense, originalProfit decimal.Decimal) (*Lot, error) {
	if strings.TrimSpace(supplierID) == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if totalSell.IsNegative() || totalExpense.IsNegative() || extraExpense.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Lot totals cannot be negative")
	}
	if extraExpense.GreaterThan(totalExpense) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Extra expense cannot exceed total expense")
	}

	return &Lot{
		BaseEntity:     shared.NewBaseEntity(),
		SupplierID:     supplierID,
		ProductID:      productID,
		LotName:        lotName,
		TotalSell:      totalSell,
		TotalExpense:   totalExpense,
		ExtraExpense:   extraExpense,
		OriginalProfit: originalProfit,
	}, nil
}

// SettlementInput returns the calculator input for this lot with the given
// discount percentage, clamped to [0, 100]
func (l *Lot) SettlementInput(discountPercentage decimal.Decimal) LotSettlementInput {
	return LotSettlementInput{
		TotalSell:          l.TotalSell,
		TotalExpense:       l.TotalExpense,
		ExtraExpense:       l.ExtraExpense,
		OriginalProfit:     l.OriginalProfit,
		DiscountPercentage: ClampPercentage(discountPercentage),
	}
}

// MarkSettled records that payment settled the lot
func (l *Lot) MarkSettled(paymentID uuid.UUID, at time.Time) error {
	if l.Settled {
		return shared.ErrLotSettled
	}
	l.Settled = true
	l.SettledAt = &at
	l.PaymentID = &paymentID
	l.UpdatedAt = at
	return nil
}

// SupplierPayment records one settlement of a supplier's lots
type SupplierPayment struct {
	shared.BaseEntity
	SupplierID         string
	LotIDs             []uuid.UUID
	DiscountPercentage decimal.Decimal
	AmountFromBalance  decimal.Decimal
	PaidAmount         decimal.Decimal
	PayableAmount      decimal.Decimal
	TotalProfit        decimal.Decimal
	TotalLotsExpense   decimal.Decimal
	DueAmount          decimal.Decimal
	Note               string
}

// NewSupplierPayment settles lots against tender. Every lot must belong to
// supplierID and still be outstanding. Amounts are stored rounded to cents.
func NewSupplierPayment(supplierID string, lots []*Lot, discountPercentage decimal.Decimal, tender PaymentTender, note string) (*SupplierPayment, PaymentSummary, error) {
	if len(lots) == 0 {
		return nil, PaymentSummary{}, shared.ErrNoLots
	}

	pct := ClampPercentage(discountPercentage)
	inputs := make([]LotSettlementInput, 0, len(lots))
	ids := make([]uuid.UUID, 0, len(lots))
	for _, lot := range lots {
		if lot.SupplierID != supplierID {
			return nil, PaymentSummary{}, shared.NewDomainError("LOT_SUPPLIER_MISMATCH", "Lot does not belong to supplier")
		}
		if lot.Settled {
			return nil, PaymentSummary{}, shared.ErrLotSettled
		}
		inputs = append(inputs, lot.SettlementInput(pct))
		ids = append(ids, lot.ID)
	}

	summary := AggregateSettlement(inputs, tender).Round()
	payment := &SupplierPayment{
		BaseEntity:         shared.NewBaseEntity(),
		SupplierID:         supplierID,
		LotIDs:             ids,
		DiscountPercentage: pct,
		AmountFromBalance:  tender.AmountFromBalance,
		PaidAmount:         tender.PaidAmount,
		PayableAmount:      summary.PayableAmount,
		TotalProfit:        summary.TotalProfit,
		TotalLotsExpense:   summary.TotalLotsExpense,
		DueAmount:          summary.NeedToPayDue,
		Note:               note,
	}
	return payment, summary, nil
}
