package service

import (
	"errors"
	"time"

	"gogett/config"
	"gogett/internal/domain"
	"gogett/internal/models"
	"gogett/pkg/refcode"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FinanceService owns the courier-side financial reconciliation: the
// cash-in-hand ledger, deposits, the arrears ledger and withdrawal requests.
// Every mutation runs as one transaction with the courier's DeliveryPayment
// row locked, so concurrent operations on the same courier serialize and the
// running balances stay equal to the sums of their ledger entries.
type FinanceService struct {
	db  *gorm.DB
	cfg *config.FinanceConfig
}

func NewFinanceService(db *gorm.DB, cfg *config.FinanceConfig) *FinanceService {
	return &FinanceService{db: db, cfg: cfg}
}

// CashRow is one undeposited COD collection.
type CashRow struct {
	PayID   uint            `json:"pay_id"`
	OrderID uint            `json:"order_id"`
	Amount  decimal.Decimal `json:"amount"`
}

// CashInHand lists the courier's undeposited entries with order amounts and
// the running total.
func (s *FinanceService) CashInHand(courierID uint) ([]CashRow, decimal.Decimal, error) {
	var rows []CashRow
	err := s.db.Model(&models.CashInHandEntry{}).
		Select("cash_in_hand_entries.pay_id, cash_in_hand_entries.order_id, orders.net AS amount").
		Joins("JOIN delivery_payments ON delivery_payments.id = cash_in_hand_entries.pay_id").
		Joins("JOIN orders ON orders.id = cash_in_hand_entries.order_id").
		Where("delivery_payments.courier_id = ? AND cash_in_hand_entries.is_deposit = ?", courierID, false).
		Scan(&rows).Error
	if err != nil {
		return nil, decimal.Zero, err
	}
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
	}
	return rows, total, nil
}

// Deposit converts the named undeposited entries into one bank deposit:
// generates a DPD reference, inserts the Deposit row, marks each entry
// deposited and decrements cash_in_hand, all atomically. Every referenced
// order must belong to this courier and still be undeposited.
func (s *FinanceService) Deposit(courierID uint, orderIDs []uint, transactionNo string) (*models.Deposit, error) {
	if len(orderIDs) == 0 {
		return nil, ErrEntryNotEligible
	}
	var dep models.Deposit
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var pay models.DeliveryPayment
		err := forUpdate(tx).
			Where("courier_id = ?", courierID).
			First(&pay).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		if err != nil {
			return err
		}

		amount := decimal.Zero
		entries := make([]models.CashInHandEntry, 0, len(orderIDs))
		seen := make(map[uint]struct{}, len(orderIDs))
		for _, orderID := range orderIDs {
			// A repeated order ID would count its net twice and push
			// cash_in_hand below the sum of the remaining entries.
			if _, dup := seen[orderID]; dup {
				return ErrEntryNotEligible
			}
			seen[orderID] = struct{}{}
			var entry models.CashInHandEntry
			err := tx.Where("order_id = ? AND pay_id = ? AND is_deposit = ?", orderID, pay.ID, false).
				First(&entry).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotEligible
			}
			if err != nil {
				return err
			}
			var order models.Order
			if err := tx.First(&order, orderID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrOrderNotFound
				}
				return err
			}
			amount = amount.Add(order.Net)
			entries = append(entries, entry)
		}
		if amount.GreaterThan(pay.CashInHand) {
			return ErrCashShortfall
		}

		ref, err := refcode.Next(tx, domain.RefPrefixDeposit)
		if err != nil {
			return err
		}
		dep = models.Deposit{
			RefNo:         ref,
			Amount:        amount,
			Date:          time.Now(),
			TransactionNo: transactionNo,
			PayID:         pay.ID,
		}
		if err := tx.Create(&dep).Error; err != nil {
			return err
		}
		for i := range entries {
			if err := tx.Model(&models.CashInHandEntry{}).
				Where("id = ?", entries[i].ID).
				Updates(map[string]interface{}{"is_deposit": true, "deposit_id": dep.ID}).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.DeliveryPayment{}).
			Where("id = ?", pay.ID).
			Update("cash_in_hand", pay.CashInHand.Sub(amount)).Error
	})
	if err != nil {
		return nil, err
	}
	log.Info().
		Uint("courier_id", courierID).
		Str("ref_no", dep.RefNo).
		Str("amount", dep.Amount.StringFixed(2)).
		Msg("cash-in-hand deposited")
	return &dep, nil
}

// DepositRow is the courier's deposit-history projection.
type DepositRow struct {
	RefNo         string          `json:"ref_no"`
	Amount        decimal.Decimal `json:"deposited_amount"`
	Date          time.Time       `json:"-"`
	TransactionNo string          `json:"transaction_no"`
}

func (s *FinanceService) Deposits(courierID uint) ([]DepositRow, error) {
	var rows []DepositRow
	err := s.db.Model(&models.Deposit{}).
		Select("deposits.ref_no, deposits.amount, deposits.date, deposits.transaction_no").
		Joins("JOIN delivery_payments ON delivery_payments.id = deposits.pay_id").
		Where("delivery_payments.courier_id = ?", courierID).
		Scan(&rows).Error
	return rows, err
}

// ArrearsRow is one withdrawable amount owed for an order.
type ArrearsRow struct {
	Amount  decimal.Decimal `json:"amount"`
	OrderID uint            `json:"order_id"`
	PayID   uint            `json:"pay_id"`
}

// Arrears lists the courier's eligible arrears entries (no withdrawal
// assigned, not received, not deducted) with the aggregate running balance.
func (s *FinanceService) Arrears(courierID uint) ([]ArrearsRow, decimal.Decimal, error) {
	var rows []ArrearsRow
	err := s.db.Model(&models.ArrearsEntry{}).
		Select("arrears_entries.amount, arrears_entries.order_id, arrears_entries.pay_id").
		Joins("JOIN delivery_payments ON delivery_payments.id = arrears_entries.pay_id").
		Where("delivery_payments.courier_id = ?", courierID).
		Where("arrears_entries.is_receive = ? AND arrears_entries.is_deduct = ? AND arrears_entries.withdrawal_id IS NULL", false, false).
		Scan(&rows).Error
	if err != nil {
		return nil, decimal.Zero, err
	}
	var pay models.DeliveryPayment
	err = s.db.Where("courier_id = ?", courierID).First(&pay).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rows, decimal.Zero, nil
	}
	if err != nil {
		return nil, decimal.Zero, err
	}
	return rows, pay.Arrears, nil
}

// RequestWithdrawal bundles the named eligible arrears entries into one
// payout request. A balance below the configured minimum is a normal decline
// (ErrInsufficientArrears), not a server fault. Otherwise the request row,
// the withdrawal_id assignment on every entry and the arrears decrement
// commit together or not at all.
func (s *FinanceService) RequestWithdrawal(courierID uint, orderIDs []uint, note string) (*models.WithdrawalRequest, error) {
	if len(orderIDs) == 0 {
		return nil, ErrArrearsNotFound
	}
	var req models.WithdrawalRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var pay models.DeliveryPayment
		err := forUpdate(tx).
			Where("courier_id = ?", courierID).
			First(&pay).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInsufficientArrears
		}
		if err != nil {
			return err
		}
		if pay.Arrears.LessThan(s.cfg.MinWithdrawal) {
			return ErrInsufficientArrears
		}

		ref, err := refcode.Next(tx, domain.RefPrefixWithdrawal)
		if err != nil {
			return err
		}
		req = models.WithdrawalRequest{
			RefNo:     ref,
			Amount:    decimal.Zero,
			Date:      time.Now(),
			Note:      note,
			IsRequest: true,
			PayID:     pay.ID,
		}
		if err := tx.Create(&req).Error; err != nil {
			return err
		}

		total := decimal.Zero
		for _, orderID := range orderIDs {
			var entry models.ArrearsEntry
			err := tx.Where("order_id = ? AND pay_id = ?", orderID, pay.ID).
				Where("is_receive = ? AND is_deduct = ? AND withdrawal_id IS NULL", false, false).
				First(&entry).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrArrearsNotFound
			}
			if err != nil {
				return err
			}
			total = total.Add(entry.Amount)
			if err := tx.Model(&models.ArrearsEntry{}).
				Where("id = ?", entry.ID).
				Update("withdrawal_id", req.ID).Error; err != nil {
				return err
			}
		}

		req.Amount = total
		if err := tx.Model(&models.WithdrawalRequest{}).
			Where("id = ?", req.ID).
			Update("amount", total).Error; err != nil {
			return err
		}
		return tx.Model(&models.DeliveryPayment{}).
			Where("id = ?", pay.ID).
			Update("arrears", pay.Arrears.Sub(total)).Error
	})
	if err != nil {
		return nil, err
	}
	log.Info().
		Uint("courier_id", courierID).
		Str("ref_no", req.RefNo).
		Str("amount", req.Amount.StringFixed(2)).
		Msg("withdrawal requested")
	return &req, nil
}

// WithdrawalRow is the courier's withdrawal-history projection.
type WithdrawalRow struct {
	RefNo      string          `json:"ref_no"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"-"`
	IsComplete bool            `json:"-"`
	IsCancel   bool            `json:"-"`
}

// State mirrors WithdrawalRequest.State for the projected row.
func (w WithdrawalRow) State() string {
	switch {
	case w.IsComplete:
		return domain.WithdrawalStateComplete
	case w.IsCancel:
		return domain.WithdrawalStateCancel
	default:
		return domain.WithdrawalStatePending
	}
}

func (s *FinanceService) Withdrawals(courierID uint) ([]WithdrawalRow, error) {
	var rows []WithdrawalRow
	err := s.db.Model(&models.WithdrawalRequest{}).
		Select("withdrawal_requests.ref_no, withdrawal_requests.amount, withdrawal_requests.date, withdrawal_requests.is_complete, withdrawal_requests.is_cancel").
		Joins("JOIN delivery_payments ON delivery_payments.id = withdrawal_requests.pay_id").
		Where("delivery_payments.courier_id = ?", courierID).
		Scan(&rows).Error
	return rows, err
}

// ReceiveWithdrawal acknowledges a completed transfer on the courier side.
// Completion itself is admin-driven, so this is a plain acknowledgment.
func (s *FinanceService) ReceiveWithdrawal(courierID uint) error {
	return nil
}
