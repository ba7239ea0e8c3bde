package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/neyamat7/pos-inventory-sub000/internal/application/trade"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/cart"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/expense"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/settlement"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared/strategy"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared/valueobject"
	"github.com/neyamat7/pos-inventory-sub000/internal/infrastructure/telemetry"
)

// EngineHandler exposes the stateless calculators: expense distribution,
// cart validation and lot settlement. Nothing is stored.
type EngineHandler struct {
	BaseHandler
	defaultStrategy strategy.DistributionMethod
	metrics         *telemetry.EngineMetrics
}

// NewEngineHandler creates a new EngineHandler
func NewEngineHandler(defaultStrategy strategy.DistributionMethod, metrics *telemetry.EngineMetrics) *EngineHandler {
	if !defaultStrategy.IsValid() {
		defaultStrategy = strategy.DistributionDivided
	}
	return &EngineHandler{defaultStrategy: defaultStrategy, metrics: metrics}
}

// RegisterRoutes registers the engine routes
func (h *EngineHandler) RegisterRoutes(rg *gin.RouterGroup) {
	engine := rg.Group("/engine")
	engine.POST("/distribute", h.Distribute)
	engine.POST("/validate", h.Validate)
	engine.POST("/settlement", h.Settle)
	engine.GET("/strategies", h.ListStrategies)
	engine.GET("/categories", h.ListCategories)
}

// DistributeRequest carries a cart and the expense pools to spread over it
type DistributeRequest struct {
	Items    []trade.CartItemInput       `json:"items" binding:"dive"`
	Expenses []trade.ExpenseRequestInput `json:"expenses" binding:"dive"`
}

// DistributeResponse is the cart with expense fields filled in
type DistributeResponse struct {
	Items   []cart.CartItem `json:"items"`
	Summary expense.Summary `json:"summary"`
	Payload expense.Payload `json:"payload"`
}

// Distribute godoc
// POST /engine/distribute
func (h *EngineHandler) Distribute(c *gin.Context) {
	var req DistributeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	items := trade.ToCartItems(req.Items)
	for i := range items {
		items[i] = items[i].Normalize()
	}
	requests := trade.ToRequests(req.Expenses, h.defaultStrategy)
	distributed := expense.Distribute(items, requests)

	ctx := c.Request.Context()
	for _, r := range requests {
		if r.Category.IsValid() {
			h.metrics.RecordDistribution(ctx, r.Category.String(), r.Strategy.String())
		}
	}

	h.Success(c, DistributeResponse{
		Items:   distributed,
		Summary: expense.Summarize(distributed).Round(),
		Payload: expense.BuildPayload(distributed),
	})
}

// ValidateRequest carries a cart to check
type ValidateRequest struct {
	Items []trade.CartItemInput `json:"items" binding:"dive"`
}

// Validate godoc
// POST /engine/validate
//
// Always answers 200; the body reports whether the cart passes.
func (h *EngineHandler) Validate(c *gin.Context) {
	var req ValidateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result := cart.ValidatePurchaseCart(trade.ToCartItems(req.Items))
	if !result.OK {
		h.metrics.RecordRejection(c.Request.Context(), string(result.Reason))
	}
	h.Success(c, result)
}

// SettlementLotInput is one lot of a stateless settlement request
type SettlementLotInput struct {
	TotalSell      valueobject.LenientDecimal `json:"total_sell"`
	TotalExpense   valueobject.LenientDecimal `json:"total_expense"`
	ExtraExpense   valueobject.LenientDecimal `json:"extra_expense"`
	OriginalProfit valueobject.LenientDecimal `json:"original_profit"`
}

// SettlementRequest asks for the settlement of ad hoc lot figures
type SettlementRequest struct {
	Lots               []SettlementLotInput       `json:"lots" binding:"dive"`
	DiscountPercentage valueobject.LenientDecimal `json:"discount_percentage"`
	AmountFromBalance  valueobject.LenientDecimal `json:"amount_from_balance"`
	PaidAmount         valueobject.LenientDecimal `json:"paid_amount"`
}

// Settle godoc
// POST /engine/settlement
// Negative lot figures and tender count as zero.
func (h *EngineHandler) Settle(c *gin.Context) {
	var req SettlementRequest
	if !h.BindJSON(c, &req) {
		return
	}

	pct := settlement.ClampPercentage(req.DiscountPercentage.Decimal)
	inputs := make([]settlement.LotSettlementInput, len(req.Lots))
	for i, l := range req.Lots {
		inputs[i] = settlement.LotSettlementInput{
			TotalSell:          valueobject.NonNegative(l.TotalSell.Decimal),
			TotalExpense:       valueobject.NonNegative(l.TotalExpense.Decimal),
			ExtraExpense:       valueobject.NonNegative(l.ExtraExpense.Decimal),
			OriginalProfit:     valueobject.NonNegative(l.OriginalProfit.Decimal),
			DiscountPercentage: pct,
		}
	}
	tender := settlement.PaymentTender{
		AmountFromBalance: valueobject.NonNegative(req.AmountFromBalance.Decimal),
		PaidAmount:        valueobject.NonNegative(req.PaidAmount.Decimal),
	}

	h.Success(c, settlement.AggregateSettlement(inputs, tender).Round())
}

// StrategyResponse describes one distribution strategy
type StrategyResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
}

// ListStrategies godoc
// GET /engine/strategies
func (h *EngineHandler) ListStrategies(c *gin.Context) {
	strategies := expense.Strategies()
	out := make([]StrategyResponse, 0, len(strategies))
	for _, s := range strategies {
		out = append(out, StrategyResponse{
			Name:        s.Name(),
			Description: s.Description(),
			Default:     s.Method() == h.defaultStrategy,
		})
	}
	h.SuccessList(c, out, len(out))
}

// CategoryResponse describes one expense category
type CategoryResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ListCategories godoc
// GET /engine/categories
func (h *EngineHandler) ListCategories(c *gin.Context) {
	categories := cart.AllExpenseCategories()
	out := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, CategoryResponse{Key: cat.String(), Label: cat.Label()})
	}
	h.SuccessList(c, out, len(out))
}
