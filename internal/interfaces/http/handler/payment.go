package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/neyamat7/pos-inventory-sub000/internal/application/finance"
)

// PaymentHandler handles supplier lot and payment endpoints
type PaymentHandler struct {
	BaseHandler
	service *finance.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(service *finance.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RegisterRoutes registers the settlement routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/lots", h.RegisterLot)
	rg.GET("/suppliers/:supplier/lots", h.ListOutstandingLots)
	rg.GET("/suppliers/:supplier/payments", h.ListPayments)
	rg.POST("/payments/preview", h.Preview)
	rg.POST("/payments", h.Pay)
}

// RegisterLot godoc
// POST /lots
func (h *PaymentHandler) RegisterLot(c *gin.Context) {
	var req finance.RegisterLotRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.RegisterLot(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListOutstandingLots godoc
// GET /suppliers/:supplier/lots
func (h *PaymentHandler) ListOutstandingLots(c *gin.Context) {
	lots, err := h.service.ListOutstandingLots(c.Request.Context(), c.Param("supplier"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, lots, len(lots))
}

// ListPayments godoc
// GET /suppliers/:supplier/payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	payments, err := h.service.ListPayments(c.Request.Context(), c.Param("supplier"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, payments, len(payments))
}

// Preview godoc
// POST /payments/preview
func (h *PaymentHandler) Preview(c *gin.Context) {
	var req finance.PaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Preview(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Pay godoc
// POST /payments
func (h *PaymentHandler) Pay(c *gin.Context) {
	var req finance.PaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Pay(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
