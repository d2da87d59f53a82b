package handler

import (
	"net/http"

	"gogett/internal/middleware"
	"gogett/internal/models"
	"gogett/internal/repository"

	"github.com/gin-gonic/gin"
)

// PerformanceHandler serves the courier's delivery record and the reviews
// they leave about customers and sellers.
type PerformanceHandler struct {
	orders  *repository.OrderRepository
	reviews *repository.ReviewRepository
}

func NewPerformanceHandler(orders *repository.OrderRepository, reviews *repository.ReviewRepository) *PerformanceHandler {
	return &PerformanceHandler{orders: orders, reviews: reviews}
}

// Completed lists delivered orders.
func (h *PerformanceHandler) Completed(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	rows, err := h.orders.CompletedByCourier(courierID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "order list error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "orders": orderListPayload(rows)})
}

// Failed lists cancelled orders that had been assigned to the courier.
func (h *PerformanceHandler) Failed(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	rows, err := h.orders.FailedByCourier(courierID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "order list error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "orders": orderListPayload(rows)})
}

type reviewRequest struct {
	Rate     int    `json:"rate" binding:"required,min=1,max=5"`
	Review   string `json:"review"`
	OrderID  *uint  `json:"order_id"`
	TargetID uint   `json:"target_id" binding:"required"`
}

// ReviewCustomer records a review about a customer.
func (h *PerformanceHandler) ReviewCustomer(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}
	rev := models.Review{Rate: req.Rate, Review: req.Review, OrderID: req.OrderID}
	if err := h.reviews.CreateCustomerReview(courierID, req.TargetID, &rev); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "review save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "review_added"})
}

// ReviewSeller records a review about a seller.
func (h *PerformanceHandler) ReviewSeller(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}
	rev := models.Review{Rate: req.Rate, Review: req.Review, OrderID: req.OrderID}
	if err := h.reviews.CreateSellerReview(courierID, req.TargetID, &rev); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "review save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "review_added"})
}

func (h *PerformanceHandler) CustomerReviews(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	rows, err := h.reviews.ListCustomerReviews(courierID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "review list error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "reviews": rows})
}

func (h *PerformanceHandler) SellerReviews(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	rows, err := h.reviews.ListSellerReviews(courierID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "review list error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "reviews": rows})
}
