package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the shared order row owned by the seller/customer subsystems. The
// courier backend reads it for amounts and reference data only.
type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	RefNo       string          `gorm:"uniqueIndex;size:20;not null" json:"ref_no"`
	Type        string          `gorm:"size:1;not null" json:"type"` // g = grocery, f = food
	Date        time.Time       `json:"date"`
	Gross       decimal.Decimal `gorm:"type:decimal(12,2)" json:"gross"`
	Discount    decimal.Decimal `gorm:"type:decimal(12,2)" json:"discount"`
	DeliveryFee decimal.Decimal `gorm:"type:decimal(12,2)" json:"delivery_fee"`
	Net         decimal.Decimal `gorm:"type:decimal(12,2)" json:"net"`
	SellerID    uint            `gorm:"not null;index" json:"seller_id"`
	IsComplete  bool            `gorm:"not null;default:false" json:"is_complete"`
	IsCancel    bool            `gorm:"not null;default:false" json:"is_cancel"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderMobile carries the delivery flags the courier workflow owns.
type OrderMobile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"uniqueIndex;not null" json:"order_id"`
	IsAccept  bool      `gorm:"not null;default:false" json:"is_accept"` // seller action
	IsReady   bool      `gorm:"not null;default:false" json:"is_ready"`  // seller action
	IsPick    bool      `gorm:"not null;default:false" json:"is_pick"`   // courier action
	IsDeliver bool      `gorm:"not null;default:false" json:"is_deliver"`
	IsReceive bool      `gorm:"not null;default:false" json:"is_receive"` // customer action
	CusID     uint      `gorm:"not null;index" json:"cus_id"`
	CourierID *uint     `gorm:"index" json:"courier_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (OrderMobile) TableName() string {
	return "order_mobiles"
}

type OrderPayment struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Overdue   decimal.Decimal `gorm:"type:decimal(12,2)" json:"overdue"`
	Payment   decimal.Decimal `gorm:"type:decimal(12,2)" json:"payment"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	CreatedAt time.Time       `json:"created_at"`
}

func (OrderPayment) TableName() string {
	return "order_payments"
}

// OrderPaymentDetail records one settlement leg of an order payment; method
// decides whether a delivery feeds the cash-in-hand ledger.
type OrderPaymentDetail struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	RefNo     string          `gorm:"uniqueIndex;size:20;not null" json:"ref_no"`
	Payment   decimal.Decimal `gorm:"type:decimal(12,2)" json:"payment"`
	Balance   decimal.Decimal `gorm:"type:decimal(12,2)" json:"balance"`
	Method    string          `gorm:"size:1;not null" json:"method"` // s = cash, c = card, o = COD
	Date      time.Time       `json:"date"`
	PayID     uint            `gorm:"not null;index" json:"pay_id"`
	CreatedAt time.Time       `json:"created_at"`
}

func (OrderPaymentDetail) TableName() string {
	return "order_payment_details"
}

// OrderReturn mirrors the delivery workflow for customer returns. No cash
// ledger side effect on deliver.
type OrderReturn struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RefNo      string    `gorm:"uniqueIndex;size:20;not null" json:"ref_no"`
	Date       time.Time `json:"date"`
	Note       string    `gorm:"size:255" json:"note"`
	IsAccept   bool      `gorm:"not null;default:false" json:"is_accept"` // admin action
	IsPick     bool      `gorm:"not null;default:false" json:"is_pick"`   // courier action
	IsDeliver  bool      `gorm:"not null;default:false" json:"is_deliver"`
	IsComplete bool      `gorm:"not null;default:false" json:"is_complete"`
	IsCancel   bool      `gorm:"not null;default:false" json:"is_cancel"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	CourierID  *uint     `gorm:"index" json:"courier_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (OrderReturn) TableName() string {
	return "order_returns"
}
