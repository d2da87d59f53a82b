package models

import (
	"time"

	"gogett/internal/domain"

	"github.com/shopspring/decimal"
)

// DeliveryPayment is the courier's payment aggregate, one row per courier.
// cash_in_hand must equal the sum of order nets over the courier's
// undeposited cash entries; arrears must equal the sum of eligible arrears
// entry amounts. Created lazily on the first COD delivery, never deleted.
type DeliveryPayment struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Earn       decimal.Decimal `gorm:"type:decimal(12,2)" json:"earn"`
	Arrears    decimal.Decimal `gorm:"type:decimal(12,2)" json:"arrears"`
	CashInHand decimal.Decimal `gorm:"type:decimal(12,2)" json:"cash_in_hand"`
	Fine       decimal.Decimal `gorm:"type:decimal(12,2)" json:"fine"`
	CourierID  uint            `gorm:"uniqueIndex;not null" json:"courier_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (DeliveryPayment) TableName() string {
	return "delivery_payments"
}

// CashInHandEntry records COD cash collected for one delivered order. The
// unique order index guarantees at most one entry per order.
type CashInHandEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	IsDeposit bool      `gorm:"not null;default:false" json:"is_deposit"`
	PayID     uint      `gorm:"not null;index" json:"pay_id"`
	OrderID   uint      `gorm:"uniqueIndex;not null" json:"order_id"`
	DepositID *uint     `gorm:"index" json:"deposit_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CashInHandEntry) TableName() string {
	return "cash_in_hand_entries"
}

// Deposit is one banking transaction converting collected cash into a bank
// deposit. Immutable after creation.
type Deposit struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	RefNo         string          `gorm:"uniqueIndex;size:20;not null" json:"ref_no"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Date          time.Time       `json:"date"`
	TransactionNo string          `gorm:"size:20" json:"transaction_no"`
	IsReceive     bool            `gorm:"not null;default:false" json:"is_receive"` // admin reconciliation
	PayID         uint            `gorm:"not null;index" json:"pay_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (Deposit) TableName() string {
	return "deposits"
}

// ArrearsEntry is an amount owed to the courier for one order. Eligible for
// withdrawal while withdrawal_id is null and neither flag is set.
type ArrearsEntry struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Note         string          `gorm:"size:255" json:"note"`
	IsReceive    bool            `gorm:"not null;default:false" json:"is_receive"` // courier action
	IsDeduct     bool            `gorm:"not null;default:false" json:"is_deduct"`  // admin action
	PayID        uint            `gorm:"not null;index" json:"pay_id"`
	OrderID      uint            `gorm:"uniqueIndex;not null" json:"order_id"`
	WithdrawalID *uint           `gorm:"index" json:"withdrawal_id"`
	FineID       *uint           `gorm:"index" json:"fine_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (ArrearsEntry) TableName() string {
	return "arrears_entries"
}

// WithdrawalRequest bundles eligible arrears entries into one payout request.
// Lifecycle: requested -> transferred by admin -> complete | cancel.
type WithdrawalRequest struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	RefNo      string          `gorm:"uniqueIndex;size:20;not null" json:"ref_no"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Date       time.Time       `json:"date"`
	Note       string          `gorm:"size:255" json:"note"`
	IsRequest  bool            `gorm:"not null;default:false" json:"is_request"`  // courier action
	IsTransfer bool            `gorm:"not null;default:false" json:"is_transfer"` // admin action
	IsReceive  bool            `gorm:"not null;default:false" json:"is_receive"`
	IsComplete bool            `gorm:"not null;default:false" json:"is_complete"`
	IsCancel   bool            `gorm:"not null;default:false" json:"is_cancel"`
	PayID      uint            `gorm:"not null;index" json:"pay_id"`
	AdminID    *uint           `json:"admin_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}

// State derives the courier-visible request state from the terminal flags.
func (w *WithdrawalRequest) State() string {
	switch {
	case w.IsComplete:
		return domain.WithdrawalStateComplete
	case w.IsCancel:
		return domain.WithdrawalStateCancel
	default:
		return domain.WithdrawalStatePending
	}
}

// Fine is an admin-imposed penalty against the courier's aggregate. No
// courier-facing endpoints mutate it; it exists so arrears deductions stay
// representable.
type Fine struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	RefNo      string          `gorm:"uniqueIndex;size:20;not null" json:"ref_no"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Date       time.Time       `json:"date"`
	Note       string          `gorm:"size:255" json:"note"`
	IsComplete bool            `gorm:"not null;default:false" json:"is_complete"`
	IsCancel   bool            `gorm:"not null;default:false" json:"is_cancel"`
	PayID      uint            `gorm:"not null;index" json:"pay_id"`
	AdminID    *uint           `json:"admin_id"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (Fine) TableName() string {
	return "fines"
}

// RefSequence backs the reference code generator: one row per prefix,
// incremented atomically inside the caller's transaction.
type RefSequence struct {
	Prefix    string    `gorm:"primaryKey;size:8" json:"prefix"`
	Seq       uint64    `gorm:"not null;default:0" json:"seq"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RefSequence) TableName() string {
	return "ref_sequences"
}
