package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gogett/internal/domain"
	"gogett/internal/middleware"
	"gogett/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TicketHandler struct {
	tickets *repository.TicketRepository
}

func NewTicketHandler(tickets *repository.TicketRepository) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// Create opens a ticket with its first message.
func (h *TicketHandler) Create(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	var req struct {
		Subject string `json:"subject" binding:"required"`
		Text    string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}
	ticket, err := h.tickets.Create(courierID, req.Subject, req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "ticket create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "ticket_opened", "ref_no": ticket.RefNo})
}

func (h *TicketHandler) List(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	tickets, err := h.tickets.ListByCourier(courierID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "ticket list error"})
		return
	}
	out := make([]gin.H, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, gin.H{
			"ticket_id": t.ID,
			"ref_no":    t.RefNo,
			"subject":   t.Subject,
			"date":      t.Date.Format(domain.DateLayout),
			"is_open":   t.IsOpen,
		})
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "tickets": out})
}

// Detail returns one ticket with its message thread.
func (h *TicketHandler) Detail(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "invalid ticket id"})
		return
	}
	ticket, err := h.tickets.GetByID(courierID, uint(ticketID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "ticket not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "ticket error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "ticket": ticket})
}

// AddMessage appends a courier message to an open ticket.
func (h *TicketHandler) AddMessage(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "invalid ticket id"})
		return
	}
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "text required"})
		return
	}
	if err := h.tickets.AddMessage(courierID, uint(ticketID), req.Text); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "ticket not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "message save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "message_added"})
}
