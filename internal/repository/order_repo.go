package repository

import (
	"time"

	"gogett/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// OrderRow is the courier's order-list projection.
type OrderRow struct {
	OrderID   uint            `json:"order_id"`
	Type      string          `json:"type"`
	Date      time.Time       `json:"-"`
	Net       decimal.Decimal `json:"net"`
	CusID     uint            `json:"cus_id"`
	IsPick    bool            `json:"-"`
	IsDeliver bool            `json:"-"`
	RefNo     string          `json:"ref_no"`
}

func (r *OrderRepository) GetOrder(orderID uint) (*models.Order, error) {
	var o models.Order
	if err := r.db.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetMobile(orderID uint) (*models.OrderMobile, error) {
	var m models.OrderMobile
	if err := r.db.Where("order_id = ?", orderID).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByCourier returns every order assigned to the courier with the flags
// needed to derive the pending/picked/delivered state.
func (r *OrderRepository) ListByCourier(courierID uint) ([]OrderRow, error) {
	var rows []OrderRow
	err := r.db.Model(&models.Order{}).
		Select("orders.id AS order_id, orders.ref_no, orders.type, orders.date, orders.net, order_mobiles.cus_id, order_mobiles.is_pick, order_mobiles.is_deliver").
		Joins("JOIN order_mobiles ON order_mobiles.order_id = orders.id").
		Where("order_mobiles.courier_id = ?", courierID).
		Scan(&rows).Error
	return rows, err
}

// CompletedByCourier lists delivered orders for the performance view.
func (r *OrderRepository) CompletedByCourier(courierID uint) ([]OrderRow, error) {
	var rows []OrderRow
	err := r.db.Model(&models.Order{}).
		Select("orders.id AS order_id, orders.ref_no, orders.type, orders.date, orders.net, order_mobiles.cus_id, order_mobiles.is_pick, order_mobiles.is_deliver").
		Joins("JOIN order_mobiles ON order_mobiles.order_id = orders.id").
		Where("order_mobiles.courier_id = ? AND order_mobiles.is_deliver = ?", courierID, true).
		Scan(&rows).Error
	return rows, err
}

// FailedByCourier lists cancelled orders that had been assigned to the
// courier.
func (r *OrderRepository) FailedByCourier(courierID uint) ([]OrderRow, error) {
	var rows []OrderRow
	err := r.db.Model(&models.Order{}).
		Select("orders.id AS order_id, orders.ref_no, orders.type, orders.date, orders.net, order_mobiles.cus_id, order_mobiles.is_pick, order_mobiles.is_deliver").
		Joins("JOIN order_mobiles ON order_mobiles.order_id = orders.id").
		Where("order_mobiles.courier_id = ? AND orders.is_cancel = ?", courierID, true).
		Scan(&rows).Error
	return rows, err
}

// PaymentMethod resolves the settlement method recorded for an order.
func (r *OrderRepository) PaymentMethod(orderID uint) (string, error) {
	var method string
	err := r.db.Model(&models.OrderPaymentDetail{}).
		Select("order_payment_details.method").
		Joins("JOIN order_payments ON order_payments.id = order_payment_details.pay_id").
		Where("order_payments.order_id = ?", orderID).
		Limit(1).
		Scan(&method).Error
	return method, err
}

func (r *OrderRepository) GetReturn(orderID uint) (*models.OrderReturn, error) {
	var ret models.OrderReturn
	if err := r.db.Where("order_id = ?", orderID).First(&ret).Error; err != nil {
		return nil, err
	}
	return &ret, nil
}

func (r *OrderRepository) ListReturnsByCourier(courierID uint) ([]models.OrderReturn, error) {
	var rets []models.OrderReturn
	err := r.db.Where("courier_id = ?", courierID).Order("id").Find(&rets).Error
	return rets, err
}
