package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gogett/internal/domain"
	"gogett/internal/middleware"
	"gogett/internal/service"

	"github.com/gin-gonic/gin"
)

// FinanceHandler exposes the cash-in-hand and arrears ledgers.
type FinanceHandler struct {
	finance *service.FinanceService
}

func NewFinanceHandler(finance *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{finance: finance}
}

// CashInHand lists undeposited COD collections, ending with the running total.
func (h *FinanceHandler) CashInHand(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	rows, total, err := h.finance.CashInHand(courierID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "cash list error"})
		return
	}
	out := make([]interface{}, 0, len(rows)+1)
	for _, r := range rows {
		out = append(out, r)
	}
	out = append(out, gin.H{"total_cash_in_hand": total})
	c.JSON(http.StatusOK, out)
}

// Deposit settles a batch of cash-in-hand entries against one bank deposit.
func (h *FinanceHandler) Deposit(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	var req struct {
		CashInHandList map[string]map[string]uint `json:"cash_in_hand_list" binding:"required"`
		TransactionNo  string                     `json:"transaction_no" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "invalid_request"})
		return
	}
	orderIDs, ok := orderIDsFromList(req.CashInHandList)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "invalid_request"})
		return
	}
	if _, err := h.finance.Deposit(courierID, orderIDs, req.TransactionNo); err != nil {
		respondFinanceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "deposited"})
}

// Deposits lists the courier's deposit history.
func (h *FinanceHandler) Deposits(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	rows, err := h.finance.Deposits(courierID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "deposit list error"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, r := range rows {
		out = append(out, gin.H{
			"ref_no":           r.RefNo,
			"deposited_amount": r.Amount,
			"date":             r.Date.Format(domain.DateLayout),
			"transaction_no":   r.TransactionNo,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Arrears lists eligible arrears entries, ending with the aggregate total.
func (h *FinanceHandler) Arrears(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	rows, total, err := h.finance.Arrears(courierID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "arrears list error"})
		return
	}
	out := make([]interface{}, 0, len(rows)+1)
	for _, r := range rows {
		out = append(out, r)
	}
	out = append(out, gin.H{"total_amount": total})
	c.JSON(http.StatusOK, out)
}

// Withdraw bundles arrears entries into a payout request. Falling below the
// minimum threshold is a normal decline, not an error.
func (h *FinanceHandler) Withdraw(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	var req struct {
		WithdrawList map[string]map[string]uint `json:"withdraw_list" binding:"required"`
		Note         string                     `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "invalid_request"})
		return
	}
	orderIDs, ok := orderIDsFromList(req.WithdrawList)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "invalid_request"})
		return
	}
	_, err := h.finance.RequestWithdrawal(courierID, orderIDs, req.Note)
	if errors.Is(err, service.ErrInsufficientArrears) {
		c.JSON(http.StatusOK, gin.H{"status": "fail", "message": "insufficient"})
		return
	}
	if err != nil {
		respondFinanceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "send_request"})
}

// Withdrawals lists withdrawal history with derived state.
func (h *FinanceHandler) Withdrawals(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	rows, err := h.finance.Withdrawals(courierID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "withdrawal list error"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, r := range rows {
		out = append(out, gin.H{
			"ref_no": r.RefNo,
			"amount": r.Amount,
			"date":   r.Date.Format(domain.DateLayout),
			"state":  r.State(),
		})
	}
	c.JSON(http.StatusOK, out)
}

// Receive acknowledges a completed transfer on the courier side.
func (h *FinanceHandler) Receive(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	if err := h.finance.ReceiveWithdrawal(courierID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "receive failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// orderIDsFromList flattens the mobile client's batch shape, a map of row
// keys to single {order_id: pay_id} pairs, into order IDs. A batch naming
// the same order twice is malformed: settling it twice would double-count
// the order's amount.
func orderIDsFromList(list map[string]map[string]uint) ([]uint, bool) {
	if len(list) == 0 {
		return nil, false
	}
	orderIDs := make([]uint, 0, len(list))
	seen := make(map[uint]struct{}, len(list))
	for _, pair := range list {
		if len(pair) != 1 {
			return nil, false
		}
		for orderID := range pair {
			id, err := strconv.ParseUint(orderID, 10, 32)
			if err != nil || id == 0 {
				return nil, false
			}
			if _, dup := seen[uint(id)]; dup {
				return nil, false
			}
			seen[uint(id)] = struct{}{}
			orderIDs = append(orderIDs, uint(id))
		}
	}
	return orderIDs, true
}

func respondFinanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "order not found"})
	case errors.Is(err, service.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "payment record not found"})
	case errors.Is(err, service.ErrEntryNotEligible):
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "entry not eligible"})
	case errors.Is(err, service.ErrCashShortfall):
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "deposit exceeds cash in hand"})
	case errors.Is(err, service.ErrArrearsNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "arrears entry not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "operation failed"})
	}
}
