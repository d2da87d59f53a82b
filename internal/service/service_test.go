package service

import (
	"fmt"
	"testing"
	"time"

	"gogett/internal/domain"
	"gogett/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive and shared.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Courier{},
		&models.Order{},
		&models.OrderMobile{},
		&models.OrderPayment{},
		&models.OrderPaymentDetail{},
		&models.OrderReturn{},
		&models.DeliveryPayment{},
		&models.CashInHandEntry{},
		&models.Deposit{},
		&models.ArrearsEntry{},
		&models.WithdrawalRequest{},
		&models.RefSequence{},
	))
	return db
}

// seedOrder creates an order with its mobile row and a payment settled with
// the given method.
func seedOrder(t *testing.T, db *gorm.DB, orderID uint, net string, method string) {
	t.Helper()
	amount, err := decimal.NewFromString(net)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Order{
		ID:    orderID,
		RefNo: fmt.Sprintf("MO%d-240115", orderID),
		Type:  domain.OrderTypeGrocery,
		Date:  time.Now(),
		Net:   amount,
	}).Error)
	require.NoError(t, db.Create(&models.OrderMobile{
		OrderID: orderID,
		CusID:   1,
	}).Error)
	pay := models.OrderPayment{Payment: amount, OrderID: orderID}
	require.NoError(t, db.Create(&pay).Error)
	require.NoError(t, db.Create(&models.OrderPaymentDetail{
		RefNo:   fmt.Sprintf("PD%d-240115", orderID),
		Payment: amount,
		Method:  method,
		Date:    time.Now(),
		PayID:   pay.ID,
	}).Error)
}

// deliverOrder walks an order through accept, pick and deliver for the courier.
func deliverOrder(t *testing.T, svc *DeliveryService, courierID, orderID uint) {
	t.Helper()
	require.NoError(t, svc.Accept(courierID, orderID))
	require.NoError(t, svc.Pick(courierID, orderID))
	require.NoError(t, svc.Deliver(courierID, orderID))
}

func paymentAggregate(t *testing.T, db *gorm.DB, courierID uint) models.DeliveryPayment {
	t.Helper()
	var pay models.DeliveryPayment
	require.NoError(t, db.Where("courier_id = ?", courierID).First(&pay).Error)
	return pay
}

// seedArrears creates a payment aggregate with eligible arrears entries, one
// per order ID, each for the given amount.
func seedArrears(t *testing.T, db *gorm.DB, courierID uint, amounts map[uint]string) models.DeliveryPayment {
	t.Helper()
	total := decimal.Zero
	for _, a := range amounts {
		amount, err := decimal.NewFromString(a)
		require.NoError(t, err)
		total = total.Add(amount)
	}
	pay := models.DeliveryPayment{Arrears: total, CourierID: courierID}
	require.NoError(t, db.Create(&pay).Error)
	for orderID, a := range amounts {
		amount, err := decimal.NewFromString(a)
		require.NoError(t, err)
		require.NoError(t, db.Create(&models.ArrearsEntry{
			Amount:  amount,
			PayID:   pay.ID,
			OrderID: orderID,
		}).Error)
	}
	return pay
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Equal(t, want, got.StringFixed(2))
}
