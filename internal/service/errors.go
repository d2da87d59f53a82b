package service

import "errors"

// Sentinel errors for the order and ledger workflows. Handlers match these
// with errors.Is to pick the right response shape; anything else is reported
// as a generic internal failure without leaking detail.
var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrReturnNotFound = errors.New("return order not found")
	ErrOrderTaken     = errors.New("order already assigned to another courier")
	ErrNotAssigned    = errors.New("order not assigned to this courier")
	ErrNotPicked      = errors.New("order has not been picked up")

	ErrPaymentNotFound    = errors.New("no payment record for courier")
	ErrDuplicateCashEntry = errors.New("cash entry already exists for order")
	ErrEntryNotEligible   = errors.New("cash entry missing or already deposited")
	ErrCashShortfall      = errors.New("deposit exceeds cash in hand")

	ErrArrearsNotFound     = errors.New("arrears entry not found or not eligible")
	ErrInsufficientArrears = errors.New("arrears below minimum withdrawal amount")

	ErrInvalidCode = errors.New("invalid or expired confirmation code")
)
