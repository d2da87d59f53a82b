package service

import (
	"strings"
	"testing"

	"gogett/config"
	"gogett/internal/domain"
	"gogett/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFinanceConfig() *config.FinanceConfig {
	return &config.FinanceConfig{MinWithdrawal: decimal.NewFromInt(5000)}
}

func TestCashInHandListAndTotal(t *testing.T) {
	db := newTestDB(t)
	delivery := NewDeliveryService(db)
	finance := NewFinanceService(db, testFinanceConfig())
	seedOrder(t, db, 10, "1500.00", domain.PaymentMethodCOD)
	seedOrder(t, db, 11, "2000.00", domain.PaymentMethodCOD)
	deliverOrder(t, delivery, 7, 10)
	deliverOrder(t, delivery, 7, 11)

	rows, total, err := finance.CashInHand(7)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	requireDecimal(t, "3500.00", total)
}

func TestDepositSettlesEntries(t *testing.T) {
	db := newTestDB(t)
	delivery := NewDeliveryService(db)
	finance := NewFinanceService(db, testFinanceConfig())
	seedOrder(t, db, 10, "1500.00", domain.PaymentMethodCOD)
	seedOrder(t, db, 11, "2000.00", domain.PaymentMethodCOD)
	deliverOrder(t, delivery, 7, 10)
	deliverOrder(t, delivery, 7, 11)

	dep, err := finance.Deposit(7, []uint{10, 11}, "TXN-001")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dep.RefNo, domain.RefPrefixDeposit))
	requireDecimal(t, "3500.00", dep.Amount)

	pay := paymentAggregate(t, db, 7)
	requireDecimal(t, "0.00", pay.CashInHand)

	var entries []models.CashInHandEntry
	require.NoError(t, db.Find(&entries).Error)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.True(t, e.IsDeposit)
		require.NotNil(t, e.DepositID)
		assert.Equal(t, dep.ID, *e.DepositID)
	}

	// Settled entries leave the cash-in-hand list.
	rows, total, err := finance.CashInHand(7)
	require.NoError(t, err)
	assert.Empty(t, rows)
	requireDecimal(t, "0.00", total)

	history, err := finance.Deposits(7)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "TXN-001", history[0].TransactionNo)
}

func TestDepositRejectsSettledEntry(t *testing.T) {
	db := newTestDB(t)
	delivery := NewDeliveryService(db)
	finance := NewFinanceService(db, testFinanceConfig())
	seedOrder(t, db, 10, "1500.00", domain.PaymentMethodCOD)
	deliverOrder(t, delivery, 7, 10)

	_, err := finance.Deposit(7, []uint{10}, "TXN-001")
	require.NoError(t, err)
	_, err = finance.Deposit(7, []uint{10}, "TXN-002")
	require.ErrorIs(t, err, ErrEntryNotEligible)
}

func TestDepositRejectsForeignEntry(t *testing.T) {
	db := newTestDB(t)
	delivery := NewDeliveryService(db)
	finance := NewFinanceService(db, testFinanceConfig())
	seedOrder(t, db, 10, "1500.00", domain.PaymentMethodCOD)
	seedOrder(t, db, 11, "2000.00", domain.PaymentMethodCOD)
	deliverOrder(t, delivery, 7, 10)
	deliverOrder(t, delivery, 8, 11)

	// Courier 8 cannot deposit courier 7's collection.
	_, err := finance.Deposit(8, []uint{10}, "TXN-001")
	require.ErrorIs(t, err, ErrEntryNotEligible)

	pay := paymentAggregate(t, db, 7)
	requireDecimal(t, "1500.00", pay.CashInHand)
}

// A batch naming the same order under two row keys must not count its net
// twice: cash_in_hand has to stay equal to the sum of undeposited entries.
func TestDepositRejectsDuplicateOrders(t *testing.T) {
	db := newTestDB(t)
	delivery := NewDeliveryService(db)
	finance := NewFinanceService(db, testFinanceConfig())
	seedOrder(t, db, 10, "1500.00", domain.PaymentMethodCOD)
	seedOrder(t, db, 11, "2000.00", domain.PaymentMethodCOD)
	deliverOrder(t, delivery, 7, 10)
	deliverOrder(t, delivery, 7, 11)

	_, err := finance.Deposit(7, []uint{10, 10}, "TXN-001")
	require.ErrorIs(t, err, ErrEntryNotEligible)

	pay := paymentAggregate(t, db, 7)
	requireDecimal(t, "3500.00", pay.CashInHand)
	rows, total, err := finance.CashInHand(7)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	requireDecimal(t, "3500.00", total)
	var n int64
	db.Model(&models.Deposit{}).Count(&n)
	assert.Zero(t, n)
}

func TestDepositWithoutAggregate(t *testing.T) {
	db := newTestDB(t)
	finance := NewFinanceService(db, testFinanceConfig())
	_, err := finance.Deposit(7, []uint{10}, "TXN-001")
	require.ErrorIs(t, err, ErrPaymentNotFound)
}

// A failure after the Deposit insert must leave no partial state behind.
func TestDepositAtomicity(t *testing.T) {
	db := newTestDB(t)
	delivery := NewDeliveryService(db)
	finance := NewFinanceService(db, testFinanceConfig())
	seedOrder(t, db, 10, "1500.00", domain.PaymentMethodCOD)
	seedOrder(t, db, 11, "2000.00", domain.PaymentMethodCOD)
	deliverOrder(t, delivery, 7, 10)
	deliverOrder(t, delivery, 7, 11)

	// Order 12 has no cash entry, so the batch fails mid-way.
	_, err := finance.Deposit(7, []uint{10, 12}, "TXN-001")
	require.ErrorIs(t, err, ErrEntryNotEligible)

	pay := paymentAggregate(t, db, 7)
	requireDecimal(t, "3500.00", pay.CashInHand)
	var n int64
	db.Model(&models.Deposit{}).Count(&n)
	assert.Zero(t, n)
	db.Model(&models.CashInHandEntry{}).Where("is_deposit = ?", true).Count(&n)
	assert.Zero(t, n)
}

func TestWithdrawBelowThreshold(t *testing.T) {
	db := newTestDB(t)
	finance := NewFinanceService(db, testFinanceConfig())
	seedArrears(t, db, 7, map[uint]string{30: "3000.00"})

	_, err := finance.RequestWithdrawal(7, []uint{30}, "")
	require.ErrorIs(t, err, ErrInsufficientArrears)

	pay := paymentAggregate(t, db, 7)
	requireDecimal(t, "3000.00", pay.Arrears)
	var n int64
	db.Model(&models.WithdrawalRequest{}).Count(&n)
	assert.Zero(t, n)
}

func TestWithdrawAtThreshold(t *testing.T) {
	db := newTestDB(t)
	finance := NewFinanceService(db, testFinanceConfig())
	seedArrears(t, db, 7, map[uint]string{30: "5000.00"})

	req, err := finance.RequestWithdrawal(7, []uint{30}, "")
	require.NoError(t, err)
	requireDecimal(t, "5000.00", req.Amount)
}

func TestWithdrawBundlesEntries(t *testing.T) {
	db := newTestDB(t)
	finance := NewFinanceService(db, testFinanceConfig())
	seedArrears(t, db, 7, map[uint]string{30: "3000.00", 31: "3000.00"})

	req, err := finance.RequestWithdrawal(7, []uint{30, 31}, "monthly payout")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(req.RefNo, domain.RefPrefixWithdrawal))
	requireDecimal(t, "6000.00", req.Amount)
	assert.True(t, req.IsRequest)

	pay := paymentAggregate(t, db, 7)
	requireDecimal(t, "0.00", pay.Arrears)

	var entries []models.ArrearsEntry
	require.NoError(t, db.Find(&entries).Error)
	for _, e := range entries {
		require.NotNil(t, e.WithdrawalID)
		assert.Equal(t, req.ID, *e.WithdrawalID)
	}

	// Bundled entries leave the eligible list.
	rows, total, err := finance.Arrears(7)
	require.NoError(t, err)
	assert.Empty(t, rows)
	requireDecimal(t, "0.00", total)

	history, err := finance.Withdrawals(7)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.WithdrawalStatePending, history[0].State())
}

// Naming an order without an eligible entry rolls back the request row and
// every withdrawal_id assignment.
func TestWithdrawAtomicity(t *testing.T) {
	db := newTestDB(t)
	finance := NewFinanceService(db, testFinanceConfig())
	seedArrears(t, db, 7, map[uint]string{30: "3000.00", 31: "3000.00"})

	_, err := finance.RequestWithdrawal(7, []uint{30, 99}, "")
	require.ErrorIs(t, err, ErrArrearsNotFound)

	pay := paymentAggregate(t, db, 7)
	requireDecimal(t, "6000.00", pay.Arrears)
	var n int64
	db.Model(&models.WithdrawalRequest{}).Count(&n)
	assert.Zero(t, n)
	db.Model(&models.ArrearsEntry{}).Where("withdrawal_id IS NOT NULL").Count(&n)
	assert.Zero(t, n)
}

func TestArrearsListSkipsIneligible(t *testing.T) {
	db := newTestDB(t)
	finance := NewFinanceService(db, testFinanceConfig())
	pay := seedArrears(t, db, 7, map[uint]string{30: "3000.00", 31: "2000.00"})
	require.NoError(t, db.Create(&models.ArrearsEntry{
		Amount:    decimal.NewFromInt(1000),
		IsReceive: true,
		PayID:     pay.ID,
		OrderID:   32,
	}).Error)

	rows, total, err := finance.Arrears(7)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	requireDecimal(t, "5000.00", total)
}

func TestReceiveWithdrawalIsAcknowledgment(t *testing.T) {
	db := newTestDB(t)
	finance := NewFinanceService(db, testFinanceConfig())
	require.NoError(t, finance.ReceiveWithdrawal(7))
}

// Cash conservation across the whole cycle: credited = deposited + remaining.
func TestCashBalanceConservation(t *testing.T) {
	db := newTestDB(t)
	delivery := NewDeliveryService(db)
	finance := NewFinanceService(db, testFinanceConfig())
	seedOrder(t, db, 10, "1500.00", domain.PaymentMethodCOD)
	seedOrder(t, db, 11, "2000.00", domain.PaymentMethodCOD)
	seedOrder(t, db, 12, "750.50", domain.PaymentMethodCOD)
	deliverOrder(t, delivery, 7, 10)
	deliverOrder(t, delivery, 7, 11)
	deliverOrder(t, delivery, 7, 12)

	_, err := finance.Deposit(7, []uint{10, 12}, "TXN-001")
	require.NoError(t, err)

	pay := paymentAggregate(t, db, 7)
	var deposited decimal.Decimal
	require.NoError(t, db.Model(&models.Deposit{}).
		Where("pay_id = ?", pay.ID).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&deposited))
	requireDecimal(t, "2000.00", pay.CashInHand)
	requireDecimal(t, "2250.50", deposited)
}
