package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gogett/internal/domain"
	"gogett/internal/middleware"
	"gogett/internal/repository"
	"gogett/internal/service"
	"gogett/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderHandler struct {
	delivery *service.DeliveryService
	orders   *repository.OrderRepository
	hub      *ws.LocationHub
}

func NewOrderHandler(delivery *service.DeliveryService, orders *repository.OrderRepository, hub *ws.LocationHub) *OrderHandler {
	return &OrderHandler{delivery: delivery, orders: orders, hub: hub}
}

type orderIDRequest struct {
	OrderID uint `json:"order_id" binding:"required"`
}

// Accept assigns an unclaimed order to the courier.
func (h *OrderHandler) Accept(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	var req orderIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "order_id required"})
		return
	}
	if err := h.delivery.Accept(courierID, req.OrderID); err != nil {
		respondDeliveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "accept"})
}

// Pick marks the order as collected from the seller.
func (h *OrderHandler) Pick(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	var req orderIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "order_id required"})
		return
	}
	if err := h.delivery.Pick(courierID, req.OrderID); err != nil {
		respondDeliveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "picked"})
}

// Deliver marks the order delivered; COD payments feed the cash ledger.
func (h *OrderHandler) Deliver(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	var req orderIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "order_id required"})
		return
	}
	if err := h.delivery.Deliver(courierID, req.OrderID); err != nil {
		respondDeliveryError(c, err)
		return
	}
	if h.hub != nil {
		h.hub.DropOrder(req.OrderID)
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "delivered"})
}

// List returns the courier's in-flight orders with derived state.
func (h *OrderHandler) List(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	rows, err := h.orders.ListByCourier(courierID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "order list error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "orders": orderListPayload(rows)})
}

// Detail returns one order with its delivery state.
func (h *OrderHandler) Detail(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "invalid order id"})
		return
	}
	order, err := h.orders.GetOrder(uint(orderID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "order error"})
		return
	}
	mobile, err := h.orders.GetMobile(uint(orderID))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "order error"})
		return
	}
	payload := gin.H{
		"order_id": order.ID,
		"ref_no":   order.RefNo,
		"type":     order.Type,
		"date":     order.Date.Format(domain.DateLayout),
		"net":      order.Net,
	}
	if mobile != nil {
		payload["state"] = service.OrderState(mobile.IsPick, mobile.IsDeliver)
		payload["cus_id"] = mobile.CusID
		payload["latitude"] = mobile.Latitude
		payload["longitude"] = mobile.Longitude
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "order": payload})
}

func orderListPayload(rows []repository.OrderRow) []gin.H {
	out := make([]gin.H, 0, len(rows))
	for _, r := range rows {
		out = append(out, gin.H{
			"order_id": r.OrderID,
			"ref_no":   r.RefNo,
			"type":     r.Type,
			"date":     r.Date.Format(domain.DateLayout),
			"net":      r.Net,
			"cus_id":   r.CusID,
			"state":    service.OrderState(r.IsPick, r.IsDeliver),
		})
	}
	return out
}

func respondDeliveryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound), errors.Is(err, service.ErrReturnNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "order not found"})
	case errors.Is(err, service.ErrOrderTaken):
		c.JSON(http.StatusConflict, gin.H{"status": "fail", "message": "order already taken"})
	case errors.Is(err, service.ErrNotAssigned):
		c.JSON(http.StatusForbidden, gin.H{"status": "fail", "message": "order not assigned to you"})
	case errors.Is(err, service.ErrNotPicked):
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "order not picked yet"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "operation failed"})
	}
}
