package service

import (
	"errors"

	"gogett/internal/domain"
	"gogett/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DeliveryService drives the courier-side order state machine
// (pending -> accepted -> picked -> delivered) and the mirrored return flow.
// Delivering a COD order feeds the cash-in-hand ledger inside the same
// transaction; a failure in any ledger step aborts the whole transition.
type DeliveryService struct {
	db *gorm.DB
}

func NewDeliveryService(db *gorm.DB) *DeliveryService {
	return &DeliveryService{db: db}
}

// Accept assigns the order to the courier. Re-accepting one's own order is a
// no-op; an order held by a different courier is refused. The claim is a
// single conditional update so two couriers racing for the same order cannot
// both win.
func (s *DeliveryService) Accept(courierID, orderID uint) error {
	res := s.db.Model(&models.OrderMobile{}).
		Where("order_id = ? AND courier_id IS NULL", orderID).
		Update("courier_id", courierID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}
	var m models.OrderMobile
	if err := s.db.Where("order_id = ?", orderID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	if m.CourierID != nil && *m.CourierID == courierID {
		return nil
	}
	return ErrOrderTaken
}

// Pick marks the order collected from the seller. Requires a prior Accept by
// the same courier; repeated calls are harmless.
func (s *DeliveryService) Pick(courierID, orderID uint) error {
	var m models.OrderMobile
	if err := s.db.Where("order_id = ?", orderID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	if m.CourierID == nil || *m.CourierID != courierID {
		return ErrNotAssigned
	}
	if m.IsPick {
		return nil
	}
	m.IsPick = true
	return s.db.Save(&m).Error
}

// Deliver completes the order. For COD orders it atomically credits the
// courier's cash-in-hand balance and records the ledger entry; no partial
// write survives a failure. Delivering an already-delivered order is a no-op
// so a retried request cannot double-credit the ledger.
func (s *DeliveryService) Deliver(courierID, orderID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var m models.OrderMobile
		if err := tx.Where("order_id = ?", orderID).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if m.CourierID == nil || *m.CourierID != courierID {
			return ErrNotAssigned
		}
		if !m.IsPick {
			return ErrNotPicked
		}
		if m.IsDeliver {
			return nil
		}
		m.IsDeliver = true
		if err := tx.Save(&m).Error; err != nil {
			return err
		}

		method, err := paymentMethod(tx, orderID)
		if err != nil {
			return err
		}
		if method != domain.PaymentMethodCOD {
			return nil
		}
		if err := creditCashInHand(tx, courierID, orderID); err != nil {
			return err
		}
		log.Info().
			Uint("courier_id", courierID).
			Uint("order_id", orderID).
			Msg("COD delivery credited to cash-in-hand ledger")
		return nil
	})
}

func paymentMethod(tx *gorm.DB, orderID uint) (string, error) {
	var method string
	err := tx.Model(&models.OrderPaymentDetail{}).
		Select("order_payment_details.method").
		Joins("JOIN order_payments ON order_payments.id = order_payment_details.pay_id").
		Where("order_payments.order_id = ?", orderID).
		Limit(1).
		Scan(&method).Error
	return method, err
}

// creditCashInHand locks (or lazily creates) the courier's payment aggregate,
// adds the order net to cash_in_hand and inserts the matching ledger entry.
func creditCashInHand(tx *gorm.DB, courierID, orderID uint) error {
	var order models.Order
	if err := tx.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	var existing models.CashInHandEntry
	err := tx.Where("order_id = ?", orderID).First(&existing).Error
	if err == nil {
		return ErrDuplicateCashEntry
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var pay models.DeliveryPayment
	err = forUpdate(tx).
		Where("courier_id = ?", courierID).
		First(&pay).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		pay = models.DeliveryPayment{CashInHand: order.Net, CourierID: courierID}
		if err := tx.Create(&pay).Error; err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		pay.CashInHand = pay.CashInHand.Add(order.Net)
		if err := tx.Model(&models.DeliveryPayment{}).
			Where("id = ?", pay.ID).
			Update("cash_in_hand", pay.CashInHand).Error; err != nil {
			return err
		}
	}

	entry := models.CashInHandEntry{PayID: pay.ID, OrderID: orderID}
	return tx.Create(&entry).Error
}

// PickReturn marks a return order collected from the customer.
func (s *DeliveryService) PickReturn(courierID, orderID uint) error {
	var ret models.OrderReturn
	err := s.db.Where("order_id = ? AND courier_id = ?", orderID, courierID).First(&ret).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReturnNotFound
		}
		return err
	}
	if ret.IsPick {
		return nil
	}
	ret.IsPick = true
	return s.db.Save(&ret).Error
}

// DeliverReturn marks a return order handed back to the seller. Returns never
// touch the cash ledger.
func (s *DeliveryService) DeliverReturn(courierID, orderID uint) error {
	var ret models.OrderReturn
	err := s.db.Where("order_id = ? AND courier_id = ?", orderID, courierID).First(&ret).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReturnNotFound
		}
		return err
	}
	if !ret.IsPick {
		return ErrNotPicked
	}
	if ret.IsDeliver {
		return nil
	}
	ret.IsDeliver = true
	return s.db.Save(&ret).Error
}

// OrderState derives the courier-visible state from the mobile flags.
func OrderState(isPick, isDeliver bool) string {
	switch {
	case isPick && isDeliver:
		return domain.OrderStateDelivered
	case isPick:
		return domain.OrderStatePicked
	default:
		return domain.OrderStatePending
	}
}
