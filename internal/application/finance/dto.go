package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/settlement"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared/valueobject"
)

// RegisterLotRequest records a delivered lot with its sales figures
type RegisterLotRequest struct {
	SupplierID     string                     `json:"supplier_id" binding:"required,notblank,max=100"`
	ProductID      string                     `json:"product_id" binding:"max=100"`
	LotName        string                     `json:"lot_name" binding:"required,max=200"`
	TotalSell      valueobject.LenientDecimal `json:"total_sell"`
	TotalExpense   valueobject.LenientDecimal `json:"total_expense"`
	ExtraExpense   valueobject.LenientDecimal `json:"extra_expense"`
	OriginalProfit valueobject.LenientDecimal `json:"original_profit"`
}

// PaymentRequest selects outstanding lots of a supplier and the tender
// offered against them. Preview uses the same request without committing.
type PaymentRequest struct {
	SupplierID         string                     `json:"supplier_id" binding:"required,notblank,max=100"`
	LotIDs             []uuid.UUID                `json:"lot_ids" binding:"required,min=1"`
	DiscountPercentage valueobject.LenientDecimal `json:"discount_percentage"`
	AmountFromBalance  valueobject.LenientDecimal `json:"amount_from_balance"`
	PaidAmount         valueobject.LenientDecimal `json:"paid_amount"`
	Note               string                     `json:"note" binding:"max=1000"`
}

// Tender returns the payment tender of the request
func (r PaymentRequest) Tender() settlement.PaymentTender {
	return settlement.PaymentTender{
		AmountFromBalance: valueobject.NonNegative(r.AmountFromBalance.Decimal),
		PaidAmount:        valueobject.NonNegative(r.PaidAmount.Decimal),
	}
}

// LotResponse is an outstanding or settled lot
type LotResponse struct {
	ID             uuid.UUID  `json:"id"`
	SupplierID     string     `json:"supplier_id"`
	ProductID      string     `json:"product_id,omitempty"`
	LotName        string     `json:"lot_name"`
	TotalSell      string     `json:"total_sell"`
	TotalExpense   string     `json:"total_expense"`
	ExtraExpense   string     `json:"extra_expense"`
	OriginalProfit string     `json:"original_profit"`
	Settled        bool       `json:"settled"`
	SettledAt      *time.Time `json:"settled_at,omitempty"`
	PaymentID      *uuid.UUID `json:"payment_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ToLotResponse converts a domain lot
func ToLotResponse(l *settlement.Lot) LotResponse {
	return LotResponse{
		ID:             l.ID,
		SupplierID:     l.SupplierID,
		ProductID:      l.ProductID,
		LotName:        l.LotName,
		TotalSell:      l.TotalSell.StringFixed(valueobject.MoneyPlaces),
		TotalExpense:   l.TotalExpense.StringFixed(valueobject.MoneyPlaces),
		ExtraExpense:   l.ExtraExpense.StringFixed(valueobject.MoneyPlaces),
		OriginalProfit: l.OriginalProfit.StringFixed(valueobject.MoneyPlaces),
		Settled:        l.Settled,
		SettledAt:      l.SettledAt,
		PaymentID:      l.PaymentID,
		CreatedAt:      l.CreatedAt,
	}
}

// ToLotResponses converts a list of domain lots
func ToLotResponses(lots []*settlement.Lot) []LotResponse {
	out := make([]LotResponse, len(lots))
	for i, l := range lots {
		out[i] = ToLotResponse(l)
	}
	return out
}

// PreviewResponse is the settlement of the selected lots, per lot and in
// aggregate, rounded to cents
type PreviewResponse struct {
	SupplierID         string                    `json:"supplier_id"`
	LotIDs             []uuid.UUID               `json:"lot_ids"`
	DiscountPercentage string                    `json:"discount_percentage"`
	Summary            settlement.PaymentSummary `json:"summary"`
}

// PaymentResponse is a committed supplier payment
type PaymentResponse struct {
	ID                 uuid.UUID   `json:"id"`
	SupplierID         string      `json:"supplier_id"`
	LotIDs             []uuid.UUID `json:"lot_ids"`
	DiscountPercentage string      `json:"discount_percentage"`
	AmountFromBalance  string      `json:"amount_from_balance"`
	PaidAmount         string      `json:"paid_amount"`
	PayableAmount      string      `json:"payable_amount"`
	TotalProfit        string      `json:"total_profit"`
	TotalLotsExpense   string      `json:"total_lots_expense"`
	DueAmount          string      `json:"due_amount"`
	Note               string      `json:"note,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
}

// ToPaymentResponse converts a domain payment
func ToPaymentResponse(p *settlement.SupplierPayment) PaymentResponse {
	return PaymentResponse{
		ID:                 p.ID,
		SupplierID:         p.SupplierID,
		LotIDs:             p.LotIDs,
		DiscountPercentage: p.DiscountPercentage.String(),
		AmountFromBalance:  p.AmountFromBalance.StringFixed(valueobject.MoneyPlaces),
		PaidAmount:         p.PaidAmount.StringFixed(valueobject.MoneyPlaces),
		PayableAmount:      p.PayableAmount.StringFixed(valueobject.MoneyPlaces),
		TotalProfit:        p.TotalProfit.StringFixed(valueobject.MoneyPlaces),
		TotalLotsExpense:   p.TotalLotsExpense.StringFixed(valueobject.MoneyPlaces),
		DueAmount:          p.DueAmount.StringFixed(valueobject.MoneyPlaces),
		Note:               p.Note,
		CreatedAt:          p.CreatedAt,
	}
}

// ToPaymentResponses converts a list of domain payments
func ToPaymentResponses(payments []*settlement.SupplierPayment) []PaymentResponse {
	out := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = ToPaymentResponse(p)
	}
	return out
}
