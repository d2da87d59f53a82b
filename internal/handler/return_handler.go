package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gogett/internal/domain"
	"gogett/internal/middleware"
	"gogett/internal/repository"
	"gogett/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReturnHandler mirrors the order workflow for customer returns. Returns
// never touch the cash ledger.
type ReturnHandler struct {
	delivery *service.DeliveryService
	orders   *repository.OrderRepository
}

func NewReturnHandler(delivery *service.DeliveryService, orders *repository.OrderRepository) *ReturnHandler {
	return &ReturnHandler{delivery: delivery, orders: orders}
}

func (h *ReturnHandler) Pick(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	var req orderIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "order_id required"})
		return
	}
	if err := h.delivery.PickReturn(courierID, req.OrderID); err != nil {
		respondDeliveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "picked"})
}

func (h *ReturnHandler) Deliver(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	var req orderIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "order_id required"})
		return
	}
	if err := h.delivery.DeliverReturn(courierID, req.OrderID); err != nil {
		respondDeliveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "delivered"})
}

func (h *ReturnHandler) List(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	returns, err := h.orders.ListReturnsByCourier(courierID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "return list error"})
		return
	}
	out := make([]gin.H, 0, len(returns))
	for _, r := range returns {
		out = append(out, gin.H{
			"order_id": r.OrderID,
			"ref_no":   r.RefNo,
			"date":     r.Date.Format(domain.DateLayout),
			"note":     r.Note,
			"state":    service.OrderState(r.IsPick, r.IsDeliver),
		})
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "returns": out})
}

func (h *ReturnHandler) Detail(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "invalid order id"})
		return
	}
	ret, err := h.orders.GetReturn(uint(orderID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "return not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "return error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"return": gin.H{
			"order_id": ret.OrderID,
			"ref_no":   ret.RefNo,
			"date":     ret.Date.Format(domain.DateLayout),
			"note":     ret.Note,
			"state":    service.OrderState(ret.IsPick, ret.IsDeliver),
		},
	})
}
