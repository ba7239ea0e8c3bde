// Package trade holds the purchase and sale carts users build up across
// requests and the orders they turn into.
package trade

import (
	"context"
	"time"

	"github.com/neyamat7/pos-inventory-sub000/internal/domain/cart"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/expense"
)

// CartType tells whether a cart buys from suppliers or sells to customers
type CartType string

const (
	CartTypePurchase CartType = "purchase"
	CartTypeSale     CartType = "sale"
)

// IsValid checks if the cart type is known
func (t CartType) IsValid() bool {
	return t == CartTypePurchase || t == CartTypeSale
}

// String returns the string representation of CartType
func (t CartType) String() string {
	return string(t)
}

// CartSession is the stored state of one cart: its items and the last
// complete set of expense requests the user submitted. Version counts
// successful saves and is zero for a session never stored.
type CartSession struct {
	ID        string            `json:"id"`
	Type      CartType          `json:"type"`
	Items     []cart.CartItem   `json:"items"`
	Expenses  []expense.Request `json:"expenses"`
	Version   int64             `json:"version"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewCartSession creates an empty session
func NewCartSession(id string, cartType CartType) *CartSession {
	if !cartType.IsValid() {
		cartType = CartTypePurchase
	}
	return &CartSession{
		ID:        id,
		Type:      cartType,
		Items:     make([]cart.CartItem, 0),
		Expenses:  make([]expense.Request, 0),
		UpdatedAt: time.Now(),
	}
}

// Cart returns a mutable cart over a copy of the session items
func (s *CartSession) Cart() *cart.Cart {
	return cart.FromItems(s.Items)
}

// Apply stores the cart contents and recomputes every expense field from
// the stored request set
func (s *CartSession) Apply(c *cart.Cart) {
	s.Items = c.Items()
	s.Recalculate()
}

// SetExpenses replaces the stored request set and redistributes
func (s *CartSession) SetExpenses(requests []expense.Request) {
	normalized := make([]expense.Request, 0, len(requests))
	for _, r := range requests {
		if !r.Category.IsValid() {
			continue
		}
		normalized = append(normalized, r.Normalize())
	}
	s.Expenses = normalized
	s.Recalculate()
}

// Recalculate zeroes all expense fields and distributes the stored requests
// over the current items
func (s *CartSession) Recalculate() {
	s.Items = expense.Distribute(expense.ResetExpenses(s.Items), s.Expenses)
	s.UpdatedAt = time.Now()
}

// Clear empties the session, dropping items and expense requests
func (s *CartSession) Clear() {
	s.Items = make([]cart.CartItem, 0)
	s.Expenses = make([]expense.Request, 0)
	s.UpdatedAt = time.Now()
}

// CartSessionStore keeps cart sessions between requests. Load returns
// shared.ErrNotFound for unknown or expired sessions. Save only succeeds when
// the stored version still equals session.Version, absent sessions counting
// as version zero, and then increments session.Version. Otherwise it returns
// shared.ErrConcurrentModification.
type CartSessionStore interface {
	Load(ctx context.Context, id string) (*CartSession, error)
	Save(ctx context.Context, session *CartSession) error
	Delete(ctx context.Context, id string) error
}
