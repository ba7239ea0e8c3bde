package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/neyamat7/pos-inventory-sub000/internal/application/trade"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/cart"
)

// CartHandler handles cart session and order endpoints
type CartHandler struct {
	BaseHandler
	service *trade.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(service *trade.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers the cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	carts := rg.Group("/carts")
	carts.POST("", h.NewSession)
	carts.GET("/:session", h.GetCart)
	carts.DELETE("/:session", h.ClearCart)
	carts.POST("/:session/items", h.AddItem)
	carts.PUT("/:session/items", h.UpdateItem)
	carts.DELETE("/:session/items/:owner/:product", h.RemoveItem)
	carts.PUT("/:session/expenses", h.DistributeExpenses)
	carts.GET("/:session/summary", h.Summary)
	carts.POST("/:session/checkout", h.Checkout)

	rg.GET("/orders/:id", h.GetOrder)
}

type newSessionRequest struct {
	Type string `json:"type" binding:"omitempty,oneof=purchase sale"`
}

// NewSession godoc
// POST /carts
func (h *CartHandler) NewSession(c *gin.Context) {
	var req newSessionRequest
	if c.Request.ContentLength != 0 && !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.NewSession(c.Request.Context(), req.Type)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetCart godoc
// GET /carts/:session
func (h *CartHandler) GetCart(c *gin.Context) {
	resp, err := h.service.GetCart(c.Request.Context(), c.Param("session"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ClearCart godoc
// DELETE /carts/:session
func (h *CartHandler) ClearCart(c *gin.Context) {
	resp, err := h.service.ClearCart(c.Request.Context(), c.Param("session"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem godoc
// POST /carts/:session/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req trade.CartItemInput
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.AddItem(c.Request.Context(), c.Param("session"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateItem godoc
// PUT /carts/:session/items
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req trade.CartItemInput
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateItem(c.Request.Context(), c.Param("session"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem godoc
// DELETE /carts/:session/items/:owner/:product
func (h *CartHandler) RemoveItem(c *gin.Context) {
	key := cart.ItemKey{ProductID: c.Param("product"), OwnerID: c.Param("owner")}

	resp, err := h.service.RemoveItem(c.Request.Context(), c.Param("session"), key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DistributeExpenses godoc
// PUT /carts/:session/expenses
func (h *CartHandler) DistributeExpenses(c *gin.Context) {
	var req trade.DistributeExpensesRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.DistributeExpenses(c.Request.Context(), c.Param("session"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Summary godoc
// GET /carts/:session/summary
func (h *CartHandler) Summary(c *gin.Context) {
	resp, err := h.service.Summary(c.Request.Context(), c.Param("session"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Checkout godoc
// POST /carts/:session/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	var req trade.CheckoutRequest
	if c.Request.ContentLength != 0 && !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Checkout(c.Request.Context(), c.Param("session"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetOrder godoc
// GET /orders/:id
func (h *CartHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
