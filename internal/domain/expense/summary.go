package expense

import (
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/cart"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ItemTotals holds the derived figures of one cart item
type ItemTotals struct {
	ProductID     string          `json:"product_id"`
	OwnerID       string          `json:"owner_id"`
	Quantity      int             `json:"quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Expenses      cart.Expenses   `json:"expenses"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Discount      decimal.Decimal `json:"discount"`
	Commission    decimal.Decimal `json:"commission"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

// GrandTotals holds cart-wide sums
type GrandTotals struct {
	Expenses        cart.Expenses   `json:"expenses"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	TotalSubtotal   decimal.Decimal `json:"total_subtotal"`
	TotalDiscount   decimal.Decimal `json:"total_discount"`
	TotalCommission decimal.Decimal `json:"total_commission"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
}

// Summary is the output of Summarize
type Summary struct {
	PerItem []ItemTotals `json:"per_item"`
	Grand   GrandTotals  `json:"grand"`
}

// TotalsFor computes the derived figures for item at full precision.
// LineTotal is subtotal plus expenses minus discount.
func TotalsFor(item cart.CartItem) ItemTotals {
	subtotal := item.Subtotal()
	expenses := item.Expenses.Total()
	discount := item.Discount()
	return ItemTotals{
		ProductID:     item.ProductID,
		OwnerID:       item.OwnerID,
		Quantity:      item.Quantity(),
		Subtotal:      subtotal,
		Expenses:      item.Expenses,
		TotalExpenses: expenses,
		Discount:      discount,
		Commission:    item.Commission(),
		LineTotal:     subtotal.Add(expenses).Sub(discount),
	}
}

// Summarize derives per-item and cart-wide totals. Values keep full
// precision; use Round before display.
func Summarize(items []cart.CartItem) Summary {
	s := Summary{
		PerItem: make([]ItemTotals, 0, len(items)),
		Grand:   zeroGrand(),
	}
	for _, item := range items {
		t := TotalsFor(item)
		s.PerItem = append(s.PerItem, t)
		s.Grand.add(t)
	}
	return s
}

// Round returns a copy of the summary with every amount rounded to cents
func (s Summary) Round() Summary {
	out := Summary{
		PerItem: make([]ItemTotals, len(s.PerItem)),
		Grand:   s.Grand.round(),
	}
	for i, t := range s.PerItem {
		out.PerItem[i] = t.round()
	}
	return out
}

func zeroGrand() GrandTotals {
	return GrandTotals{
		TotalExpenses:   decimal.Zero,
		TotalSubtotal:   decimal.Zero,
		TotalDiscount:   decimal.Zero,
		TotalCommission: decimal.Zero,
		GrandTotal:      decimal.Zero,
	}
}

func (g *GrandTotals) add(t ItemTotals) {
	for _, c := range cart.AllExpenseCategories() {
		g.Expenses.Set(c, g.Expenses.Get(c).Add(t.Expenses.Get(c)))
	}
	g.TotalExpenses = g.TotalExpenses.Add(t.TotalExpenses)
	g.TotalSubtotal = g.TotalSubtotal.Add(t.Subtotal)
	g.TotalDiscount = g.TotalDiscount.Add(t.Discount)
	g.TotalCommission = g.TotalCommission.Add(t.Commission)
	g.GrandTotal = g.GrandTotal.Add(t.LineTotal)
}

func (g GrandTotals) round() GrandTotals {
	return GrandTotals{
		Expenses:        roundExpenses(g.Expenses),
		TotalExpenses:   valueobject.RoundMoney(g.TotalExpenses),
		TotalSubtotal:   valueobject.RoundMoney(g.TotalSubtotal),
		TotalDiscount:   valueobject.RoundMoney(g.TotalDiscount),
		TotalCommission: valueobject.RoundMoney(g.TotalCommission),
		GrandTotal:      valueobject.RoundMoney(g.GrandTotal),
	}
}

func (t ItemTotals) round() ItemTotals {
	t.Subtotal = valueobject.RoundMoney(t.Subtotal)
	t.Expenses = roundExpenses(t.Expenses)
	t.TotalExpenses = valueobject.RoundMoney(t.TotalExpenses)
	t.Discount = valueobject.RoundMoney(t.Discount)
	t.Commission = valueobject.RoundMoney(t.Commission)
	t.LineTotal = valueobject.RoundMoney(t.LineTotal)
	return t
}

func roundExpenses(e cart.Expenses) cart.Expenses {
	var out cart.Expenses
	for _, c := range cart.AllExpenseCategories() {
		out.Set(c, valueobject.RoundMoney(e.Get(c)))
	}
	return out
}

// PayloadItem is one item as handed to persistence
type PayloadItem struct {
	ProductID          string            `json:"product_id"`
	ProductName        string            `json:"product_name,omitempty"`
	QuantityKind       cart.QuantityKind `json:"quantity_kind"`
	Quantity           int               `json:"quantity"`
	PieceQuantity      int               `json:"piece_quantity"`
	BoxQuantity        int               `json:"box_quantity"`
	CrateType1Quantity int               `json:"crate_type1_quantity"`
	CrateType2Quantity int               `json:"crate_type2_quantity"`
	UnitCost           decimal.Decimal   `json:"unit_cost"`
	Subtotal           decimal.Decimal   `json:"subtotal"`
	Expenses           cart.Expenses     `json:"expenses"`
	TotalExpenses      decimal.Decimal   `json:"total_expenses"`
	Discount           decimal.Decimal   `json:"discount"`
	Commission         decimal.Decimal   `json:"commission"`
	LineTotal          decimal.Decimal   `json:"line_total"`
}

// OwnerGroup collects the items belonging to one supplier or customer
type OwnerGroup struct {
	OwnerID       string          `json:"owner_id"`
	Items         []PayloadItem   `json:"items"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
}

// Payload is the flat, rounded structure persisted on checkout
type Payload struct {
	Owners        []OwnerGroup    `json:"owners"`
	Totals        GrandTotals     `json:"totals"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
}

// BuildPayload groups items by owner in order of first appearance. All
// amounts are rounded to cents.
func BuildPayload(items []cart.CartItem) Payload {
	summary := Summarize(items)

	index := make(map[string]int)
	owners := make([]OwnerGroup, 0)
	for i, item := range items {
		t := summary.PerItem[i]

		idx, ok := index[item.OwnerID]
		if !ok {
			idx = len(owners)
			index[item.OwnerID] = idx
			owners = append(owners, OwnerGroup{
				OwnerID:       item.OwnerID,
				Items:         make([]PayloadItem, 0),
				TotalExpenses: decimal.Zero,
				Subtotal:      decimal.Zero,
				Total:         decimal.Zero,
			})
		}

		g := &owners[idx]
		g.TotalExpenses = g.TotalExpenses.Add(t.TotalExpenses)
		g.Subtotal = g.Subtotal.Add(t.Subtotal)
		g.Total = g.Total.Add(t.LineTotal)

		r := t.round()
		g.Items = append(g.Items, PayloadItem{
			ProductID:          item.ProductID,
			ProductName:        item.ProductName,
			QuantityKind:       item.QuantityKind,
			Quantity:           r.Quantity,
			PieceQuantity:      item.PieceQuantity,
			BoxQuantity:        item.BoxQuantity,
			CrateType1Quantity: item.CrateType1Quantity,
			CrateType2Quantity: item.CrateType2Quantity,
			UnitCost:           valueobject.RoundMoney(item.UnitCost),
			Subtotal:           r.Subtotal,
			Expenses:           r.Expenses,
			TotalExpenses:      r.TotalExpenses,
			Discount:           r.Discount,
			Commission:         r.Commission,
			LineTotal:          r.LineTotal,
		})
	}

	for i := range owners {
		owners[i].TotalExpenses = valueobject.RoundMoney(owners[i].TotalExpenses)
		owners[i].Subtotal = valueobject.RoundMoney(owners[i].Subtotal)
		owners[i].Total = valueobject.RoundMoney(owners[i].Total)
	}

	grand := summary.Grand.round()
	return Payload{
		Owners:        owners,
		Totals:        grand,
		TotalExpenses: grand.TotalExpenses,
	}
}
