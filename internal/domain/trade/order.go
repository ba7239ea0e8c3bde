package trade

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/cart"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/expense"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Order is a committed purchase or sale
type Order struct {
	shared.BaseEntity
	Type          CartType
	SessionID     string
	Payload       expense.Payload
	ItemCount     int
	TotalExpenses decimal.Decimal
	GrandTotal    decimal.Decimal
	Note          string
}

// NewOrder builds an order from the items of a checked out cart. The items
// must pass cart validation.
func NewOrder(cartType CartType, sessionID string, items []cart.CartItem, note string) (*Order, error) {
	if !cartType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CART_TYPE", "Cart type must be purchase or sale")
	}
	if len(items) == 0 {
		return nil, shared.ErrEmptyCart
	}
	if err := cart.ValidatePurchaseCart(items).Err(); err != nil {
		return nil, err
	}

	payload := expense.BuildPayload(items)
	return &Order{
		BaseEntity:    shared.NewBaseEntity(),
		Type:          cartType,
		SessionID:     sessionID,
		Payload:       payload,
		ItemCount:     len(items),
		TotalExpenses: payload.TotalExpenses,
		GrandTotal:    payload.Totals.GrandTotal,
		Note:          strings.TrimSpace(note),
	}, nil
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Save stores a new order
	Save(ctx context.Context, order *Order) error

	// FindByID finds an order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
}
