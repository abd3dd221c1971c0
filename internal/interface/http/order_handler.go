package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kumawatvinit/ShopSpot/internal/application"
	"github.com/kumawatvinit/ShopSpot/pkg/response"
)

type OrderHandler struct {
	Svc    *application.OrderService
	Logger *logrus.Logger
}

func NewOrderHandler(svc *application.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Svc: svc, Logger: logger}
}

// ClientToken GET /braintree/token (signed in)
func (h *OrderHandler) ClientToken(c *gin.Context) {
	token, err := h.Svc.ClientToken(c.Request.Context())
	if err != nil {
		fail(c, err, "Error in getting payment token")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"client_token": token}, "Payment token issued", nil)
}

type checkoutRequest struct {
	Nonce string                 `json:"nonce"`
	Cart  []application.CartLine `json:"cart"`
}

// Checkout POST /braintree/payment (signed in)
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	o, err := h.Svc.Checkout(c.Request.Context(), callerID(c), req.Nonce, req.Cart)
	if err != nil {
		fail(c, err, "Error in payment")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"order": o}, "Order placed successfully", nil)
}

// Orders GET /orders (signed in) lists the caller's orders.
func (h *OrderHandler) Orders(c *gin.Context) {
	orders, err := h.Svc.BuyerOrders(c.Request.Context(), callerID(c))
	if err != nil {
		fail(c, err, "Error in getting orders")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"orders": orders}, "Orders fetched successfully", nil)
}

// AllOrders GET /all-orders (admin)
func (h *OrderHandler) AllOrders(c *gin.Context) {
	orders, err := h.Svc.AllOrders(c.Request.Context())
	if err != nil {
		fail(c, err, "Error in getting orders")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"orders": orders}, "Orders fetched successfully",
		gin.H{"total": len(orders)})
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus PUT /order-status/:id (admin)
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	o, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		fail(c, err, "Error in updating order status")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": o}, "Order status updated successfully", nil)
}
