package service

import (
	"testing"

	"gogett/internal/domain"
	"gogett/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptAssignsOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeliveryService(db)
	seedOrder(t, db, 10, "1500.00", domain.PaymentMethodCOD)

	require.NoError(t, svc.Accept(7, 10))

	var m models.OrderMobile
	require.NoError(t, db.Where("order_id = ?", 10).First(&m).Error)
	require.NotNil(t, m.CourierID)
	assert.Equal(t, uint(7), *m.CourierID)
}

func TestAcceptRefusesTakenOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeliveryService(db)
	seedOrder(t, db, 10, "1500.00", domain.PaymentMethodCOD)

	require.NoError(t, svc.Accept(7, 10))
	err := svc.Accept(8, 10)
	require.ErrorIs(t, err, ErrOrderTaken)

	// Re-accepting one's own order is a no-op.
	require.NoError(t, svc.Accept(7, 10))
}

func TestAcceptUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeliveryService(db)
	require.ErrorIs(t, svc.Accept(7, 999), ErrOrderNotFound)
}

func TestPickRequiresAssignment(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeliveryService(db)
	seedOrder(t, db, 10, "1500.00", domain.PaymentMethodCOD)

	require.ErrorIs(t, svc.Pick(7, 10), ErrNotAssigned)

	require.NoError(t, svc.Accept(7, 10))
	require.ErrorIs(t, svc.Pick(8, 10), ErrNotAssigned)
	require.NoError(t, svc.Pick(7, 10))
	require.NoError(t, svc.Pick(7, 10)) // idempotent
}

func TestDeliverRequiresPick(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeliveryService(db)
	seedOrder(t, db, 10, "1500.00", domain.PaymentMethodCOD)

	require.NoError(t, svc.Accept(7, 10))
	require.ErrorIs(t, svc.Deliver(7, 10), ErrNotPicked)
}

func TestDeliverCODCreditsCashInHand(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeliveryService(db)
	seedOrder(t, db, 10, "1500.00", domain.PaymentMethodCOD)

	deliverOrder(t, svc, 7, 10)

	pay := paymentAggregate(t, db, 7)
	requireDecimal(t, "1500.00", pay.CashInHand)

	var entry models.CashInHandEntry
	require.NoError(t, db.Where("order_id = ?", 10).First(&entry).Error)
	assert.Equal(t, pay.ID, entry.PayID)
	assert.False(t, entry.IsDeposit)
}

func TestDeliverCardLeavesLedgerAlone(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeliveryService(db)
	seedOrder(t, db, 10, "1500.00", domain.PaymentMethodCard)

	deliverOrder(t, svc, 7, 10)

	var n int64
	db.Model(&models.DeliveryPayment{}).Count(&n)
	assert.Zero(t, n)
	db.Model(&models.CashInHandEntry{}).Count(&n)
	assert.Zero(t, n)
}

func TestRedeliverDoesNotDoubleCredit(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeliveryService(db)
	seedOrder(t, db, 10, "1500.00", domain.PaymentMethodCOD)

	deliverOrder(t, svc, 7, 10)
	require.NoError(t, svc.Deliver(7, 10))

	pay := paymentAggregate(t, db, 7)
	requireDecimal(t, "1500.00", pay.CashInHand)
	var n int64
	db.Model(&models.CashInHandEntry{}).Count(&n)
	assert.Equal(t, int64(1), n)
}

func TestDeliverAccumulatesAcrossOrders(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeliveryService(db)
	seedOrder(t, db, 10, "1500.00", domain.PaymentMethodCOD)
	seedOrder(t, db, 11, "2000.00", domain.PaymentMethodCOD)

	deliverOrder(t, svc, 7, 10)
	deliverOrder(t, svc, 7, 11)

	pay := paymentAggregate(t, db, 7)
	requireDecimal(t, "3500.00", pay.CashInHand)
}

func TestReturnFlowHasNoLedgerEffect(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeliveryService(db)
	courierID := uint(7)
	require.NoError(t, db.Create(&models.OrderReturn{
		RefNo:     "MR1-240115",
		OrderID:   20,
		CourierID: &courierID,
	}).Error)

	require.ErrorIs(t, svc.DeliverReturn(7, 20), ErrNotPicked)
	require.NoError(t, svc.PickReturn(7, 20))
	require.NoError(t, svc.DeliverReturn(7, 20))
	require.NoError(t, svc.DeliverReturn(7, 20)) // idempotent

	var ret models.OrderReturn
	require.NoError(t, db.Where("order_id = ?", 20).First(&ret).Error)
	assert.True(t, ret.IsPick)
	assert.True(t, ret.IsDeliver)

	var n int64
	db.Model(&models.DeliveryPayment{}).Count(&n)
	assert.Zero(t, n)
}

func TestReturnRequiresAssignment(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeliveryService(db)
	courierID := uint(7)
	require.NoError(t, db.Create(&models.OrderReturn{
		RefNo:     "MR1-240115",
		OrderID:   20,
		CourierID: &courierID,
	}).Error)

	require.ErrorIs(t, svc.PickReturn(8, 20), ErrReturnNotFound)
}

func TestOrderState(t *testing.T) {
	assert.Equal(t, domain.OrderStatePending, OrderState(false, false))
	assert.Equal(t, domain.OrderStatePicked, OrderState(true, false))
	assert.Equal(t, domain.OrderStateDelivered, OrderState(true, true))
}
