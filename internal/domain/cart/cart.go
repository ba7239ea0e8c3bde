package cart

import "encoding/json"

// Cart is the ordered set of items of one purchase or sale in progress.
// Items are unique by (ProductID, OwnerID). A piece item is always alone:
// adding one replaces the whole cart, and nothing else may join it.
//
// A Cart is not safe for concurrent use; callers own it for the duration
// of a request.
type Cart struct {
	items []CartItem
}

// New creates an empty cart
func New() *Cart {
	return &Cart{items: make([]CartItem, 0)}
}

// FromItems restores a cart from previously stored items without
// re-running insertion checks
func FromItems(items []CartItem) *Cart {
	c := &Cart{items: make([]CartItem, len(items))}
	copy(c.items, items)
	return c
}

// Items returns a copy of the items in cart order
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty returns true if the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Find returns the item stored under key
func (c *Cart) Find(key ItemKey) (CartItem, bool) {
	if idx := c.indexOf(key); idx >= 0 {
		return c.items[idx], true
	}
	return CartItem{}, false
}

// Add inserts item. Duplicates are rejected; a piece item replaces the
// current contents; a box or crate item cannot join a piece cart.
func (c *Cart) Add(item CartItem) ValidationResult {
	item = item.Normalize()
	key := item.Key()

	if !item.QuantityKind.IsValid() {
		return Reject(key, ReasonInvalidQuantityKind)
	}
	if c.indexOf(key) >= 0 {
		return Reject(key, ReasonDuplicateCartItem)
	}

	if item.IsPiece() {
		c.items = []CartItem{item}
		return Valid()
	}
	if c.hasPiece() {
		return Reject(key, ReasonMixedQuantityKind)
	}

	c.items = append(c.items, item)
	return Valid()
}

// Update replaces the fields of an item already in the cart. The key cannot
// change and a kind change must keep the piece rule intact. Expense fields
// are carried over from the stored item.
func (c *Cart) Update(item CartItem) ValidationResult {
	item = item.Normalize()
	key := item.Key()

	idx := c.indexOf(key)
	if idx < 0 {
		return Reject(key, ReasonItemNotFound)
	}
	if !item.QuantityKind.IsValid() {
		return Reject(key, ReasonInvalidQuantityKind)
	}

	for i, other := range c.items {
		if i == idx {
			continue
		}
		if item.IsPiece() || other.IsPiece() {
			return Reject(key, ReasonMixedQuantityKind)
		}
	}

	item.Expenses = c.items[idx].Expenses
	c.items[idx] = item
	return Valid()
}

// Remove deletes the item stored under key. It reports whether an item was removed.
func (c *Cart) Remove(key ItemKey) bool {
	idx := c.indexOf(key)
	if idx < 0 {
		return false
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	return true
}

// Clear removes every item
func (c *Cart) Clear() {
	c.items = make([]CartItem, 0)
}

// MarshalJSON implements json.Marshaler
func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.items)
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Cart) UnmarshalJSON(data []byte) error {
	var items []CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	if items == nil {
		items = make([]CartItem, 0)
	}
	c.items = items
	return nil
}

func (c *Cart) indexOf(key ItemKey) int {
	for i, item := range c.items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

func (c *Cart) hasPiece() bool {
	for _, item := range c.items {
		if item.IsPiece() {
			return true
		}
	}
	return false
}
