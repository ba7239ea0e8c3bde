package cart

import (
	"strings"

	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// QuantityKind selects which quantity field of a CartItem is authoritative
type QuantityKind string

const (
	QuantityKindPiece QuantityKind = "piece"
	QuantityKindBox   QuantityKind = "box"
	QuantityKindCrate QuantityKind = "crate"
)

// IsValid checks if the kind is one of the known quantity kinds
func (k QuantityKind) IsValid() bool {
	switch k {
	case QuantityKindPiece, QuantityKindBox, QuantityKindCrate:
		return true
	}
	return false
}

// String returns the string representation of QuantityKind
func (k QuantityKind) String() string {
	return string(k)
}

// ExpenseCategory names one of the shared overhead pools
type ExpenseCategory string

const (
	ExpenseTransportation ExpenseCategory = "transportation"
	ExpenseMosqueFee      ExpenseCategory = "mosque_fee"
	ExpenseVanFare        ExpenseCategory = "van_fare"
	ExpenseTradingPostFee ExpenseCategory = "trading_post_fee"
	ExpenseLabour         ExpenseCategory = "labour"
	ExpenseOther          ExpenseCategory = "other_expenses"
)

// AllExpenseCategories returns every category in display order
func AllExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		ExpenseTransportation,
		ExpenseMosqueFee,
		ExpenseVanFare,
		ExpenseTradingPostFee,
		ExpenseLabour,
		ExpenseOther,
	}
}

// IsValid checks if the category is known
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseTransportation, ExpenseMosqueFee, ExpenseVanFare,
		ExpenseTradingPostFee, ExpenseLabour, ExpenseOther:
		return true
	}
	return false
}

// String returns the string representation of ExpenseCategory
func (c ExpenseCategory) String() string {
	return string(c)
}

// Label returns a human readable name, e.g. "Trading Post Fee"
func (c ExpenseCategory) Label() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(c), "_", " "))
}

// Expenses holds the share of every overhead pool charged to one item.
// Only the distributor writes these fields.
type Expenses struct {
	Transportation decimal.Decimal `json:"transportation"`
	MosqueFee      decimal.Decimal `json:"mosque_fee"`
	VanFare        decimal.Decimal `json:"van_fare"`
	TradingPostFee decimal.Decimal `json:"trading_post_fee"`
	Labour         decimal.Decimal `json:"labour"`
	OtherExpenses  decimal.Decimal `json:"other_expenses"`
}

// Get returns the amount charged for category, zero for unknown categories
func (e Expenses) Get(category ExpenseCategory) decimal.Decimal {
	switch category {
	case ExpenseTransportation:
		return e.Transportation
	case ExpenseMosqueFee:
		return e.MosqueFee
	case ExpenseVanFare:
		return e.VanFare
	case ExpenseTradingPostFee:
		return e.TradingPostFee
	case ExpenseLabour:
		return e.Labour
	case ExpenseOther:
		return e.OtherExpenses
	}
	return decimal.Zero
}

// Set overwrites the amount for category. It reports false for unknown categories.
func (e *Expenses) Set(category ExpenseCategory, amount decimal.Decimal) bool {
	switch category {
	case ExpenseTransportation:
		e.Transportation = amount
	case ExpenseMosqueFee:
		e.MosqueFee = amount
	case ExpenseVanFare:
		e.VanFare = amount
	case ExpenseTradingPostFee:
		e.TradingPostFee = amount
	case ExpenseLabour:
		e.Labour = amount
	case ExpenseOther:
		e.OtherExpenses = amount
	default:
		return false
	}
	return true
}

// Total returns the sum over all categories
func (e Expenses) Total() decimal.Decimal {
	total := decimal.Zero
	for _, c := range AllExpenseCategories() {
		total = total.Add(e.Get(c))
	}
	return total
}

// ItemKey identifies an item inside a cart
type ItemKey struct {
	ProductID string `json:"product_id"`
	OwnerID   string `json:"owner_id"`
}

// CartItem is one product line awaiting purchase or sale. OwnerID is the
// supplier for purchases and the customer for sales.
type CartItem struct {
	ProductID          string          `json:"product_id"`
	OwnerID            string          `json:"owner_id"`
	ProductName        string          `json:"product_name,omitempty"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	QuantityKind       QuantityKind    `json:"quantity_kind"`
	PieceQuantity      int             `json:"piece_quantity"`
	BoxQuantity        int             `json:"box_quantity"`
	CrateType1Quantity int             `json:"crate_type1_quantity"`
	CrateType2Quantity int             `json:"crate_type2_quantity"`
	IsDiscountable     bool            `json:"is_discountable"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	AllowCommission    bool            `json:"allow_commission"`
	CommissionRate     decimal.Decimal `json:"commission_rate"`
	Expenses           Expenses        `json:"expenses"`
}

// Key returns the identity of the item within a cart
func (i CartItem) Key() ItemKey {
	return ItemKey{ProductID: i.ProductID, OwnerID: i.OwnerID}
}

// IsPiece reports whether the item is sold by the piece
func (i CartItem) IsPiece() bool {
	return i.QuantityKind == QuantityKindPiece
}

// Quantity returns the authoritative quantity for the item's kind
func (i CartItem) Quantity() int {
	switch i.QuantityKind {
	case QuantityKindPiece:
		return i.PieceQuantity
	case QuantityKindBox:
		return i.BoxQuantity
	case QuantityKindCrate:
		return i.CrateType1Quantity + i.CrateType2Quantity
	}
	return 0
}

// Subtotal returns unit cost times quantity, before expenses
func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.Quantity())))
}

// Discount returns the discount that applies to the item
func (i CartItem) Discount() decimal.Decimal {
	if !i.IsDiscountable {
		return decimal.Zero
	}
	return i.DiscountAmount
}

// Commission returns the commission earned on the item's subtotal
func (i CartItem) Commission() decimal.Decimal {
	if !i.AllowCommission {
		return decimal.Zero
	}
	return valueobject.Percentage(i.Subtotal(), i.CommissionRate)
}

// Normalize clamps user-entered numbers into their valid ranges: negative
// quantities and discounts become zero and the commission rate is limited
// to [0, 100]. Expense fields are left alone.
func (i CartItem) Normalize() CartItem {
	i.PieceQuantity = max(i.PieceQuantity, 0)
	i.BoxQuantity = max(i.BoxQuantity, 0)
	i.CrateType1Quantity = max(i.CrateType1Quantity, 0)
	i.CrateType2Quantity = max(i.CrateType2Quantity, 0)
	i.DiscountAmount = valueobject.NonNegative(i.DiscountAmount)
	i.CommissionRate = valueobject.ClampPercentage(i.CommissionRate)
	return i
}
