package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/cart"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/expense"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared/strategy"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared/valueobject"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/trade"
)

// CartItemInput is an item as submitted by the cart form. Numeric fields
// are lenient: malformed amounts decode as zero.
type CartItemInput struct {
	ProductID          string                     `json:"product_id" binding:"required,notblank,max=100"`
	OwnerID            string                     `json:"owner_id" binding:"required,notblank,max=100"`
	ProductName        string                     `json:"product_name" binding:"max=200"`
	UnitCost           valueobject.LenientDecimal `json:"unit_cost"`
	QuantityKind       string                     `json:"quantity_kind" binding:"required"`
	PieceQuantity      int                        `json:"piece_quantity"`
	BoxQuantity        int                        `json:"box_quantity"`
	CrateType1Quantity int                        `json:"crate_type1_quantity"`
	CrateType2Quantity int                        `json:"crate_type2_quantity"`
	IsDiscountable     bool                       `json:"is_discountable"`
	DiscountAmount     valueobject.LenientDecimal `json:"discount_amount"`
	AllowCommission    bool                       `json:"allow_commission"`
	CommissionRate     valueobject.LenientDecimal `json:"commission_rate"`
}

// ToCartItem converts the input to a domain item
func (in CartItemInput) ToCartItem() cart.CartItem {
	return cart.CartItem{
		ProductID:          in.ProductID,
		OwnerID:            in.OwnerID,
		ProductName:        in.ProductName,
		UnitCost:           in.UnitCost.Decimal,
		QuantityKind:       cart.QuantityKind(in.QuantityKind),
		PieceQuantity:      in.PieceQuantity,
		BoxQuantity:        in.BoxQuantity,
		CrateType1Quantity: in.CrateType1Quantity,
		CrateType2Quantity: in.CrateType2Quantity,
		IsDiscountable:     in.IsDiscountable,
		DiscountAmount:     in.DiscountAmount.Decimal,
		AllowCommission:    in.AllowCommission,
		CommissionRate:     in.CommissionRate.Decimal,
	}
}

// ToCartItems converts a batch of inputs
func ToCartItems(inputs []CartItemInput) []cart.CartItem {
	items := make([]cart.CartItem, len(inputs))
	for i, in := range inputs {
		items[i] = in.ToCartItem()
	}
	return items
}

// ExpenseRequestInput asks for one expense pool to be distributed
type ExpenseRequestInput struct {
	Category string                     `json:"category"`
	Amount   valueobject.LenientDecimal `json:"amount"`
	Strategy string                     `json:"strategy"`
}

// ToRequest converts the input, using fallback when no strategy was given
func (in ExpenseRequestInput) ToRequest(fallback strategy.DistributionMethod) expense.Request {
	method := strategy.DistributionMethod(in.Strategy)
	if in.Strategy == "" {
		method = fallback
	}
	return expense.Request{
		Category: cart.ExpenseCategory(in.Category),
		Amount:   in.Amount.Decimal,
		Strategy: method,
	}.Normalize()
}

// ToRequests converts a batch of inputs
func ToRequests(inputs []ExpenseRequestInput, fallback strategy.DistributionMethod) []expense.Request {
	requests := make([]expense.Request, len(inputs))
	for i, in := range inputs {
		requests[i] = in.ToRequest(fallback)
	}
	return requests
}

// DistributeExpensesRequest carries the complete expense set of a cart.
// Categories left out are reset to zero.
type DistributeExpensesRequest struct {
	Expenses []ExpenseRequestInput `json:"expenses" binding:"dive"`
}

// CheckoutRequest commits a cart as a purchase or sale
type CheckoutRequest struct {
	Type string `json:"type" binding:"omitempty,oneof=purchase sale"`
	Note string `json:"note" binding:"max=1000"`
}

// CartResponse is the state of a cart session
type CartResponse struct {
	SessionID string            `json:"session_id"`
	Type      string            `json:"type"`
	Items     []cart.CartItem   `json:"items"`
	Expenses  []expense.Request `json:"expenses"`
	Summary   expense.Summary   `json:"summary"`
	Version   int64             `json:"version"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ToCartResponse converts a session, rounding the summary for display
func ToCartResponse(s *trade.CartSession) CartResponse {
	return CartResponse{
		SessionID: s.ID,
		Type:      s.Type.String(),
		Items:     s.Items,
		Expenses:  s.Expenses,
		Summary:   expense.Summarize(s.Items).Round(),
		Version:   s.Version,
		UpdatedAt: s.UpdatedAt,
	}
}

// OrderResponse is a committed order
type OrderResponse struct {
	ID            uuid.UUID       `json:"id"`
	Type          string          `json:"type"`
	SessionID     string          `json:"session_id"`
	ItemCount     int             `json:"item_count"`
	TotalExpenses string          `json:"total_expenses"`
	GrandTotal    string          `json:"grand_total"`
	Payload       expense.Payload `json:"payload"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToOrderResponse converts a domain order
func ToOrderResponse(o *trade.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		Type:          o.Type.String(),
		SessionID:     o.SessionID,
		ItemCount:     o.ItemCount,
		TotalExpenses: o.TotalExpenses.StringFixed(valueobject.MoneyPlaces),
		GrandTotal:    o.GrandTotal.StringFixed(valueobject.MoneyPlaces),
		Payload:       o.Payload,
		Note:          o.Note,
		CreatedAt:     o.CreatedAt,
	}
}

// SummaryResponse previews a cart: its totals, the owner grouped payload
// checkout would store and whether the cart currently passes validation
type SummaryResponse struct {
	SessionID  string                `json:"session_id"`
	Summary    expense.Summary       `json:"summary"`
	Payload    expense.Payload       `json:"payload"`
	Validation cart.ValidationResult `json:"validation"`
}
