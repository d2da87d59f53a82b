package domain

// Payment methods as stored on order_payment_details.method.
const (
	PaymentMethodCash = "s"
	PaymentMethodCard = "c"
	PaymentMethodCOD  = "o"
)

// Order types.
const (
	OrderTypeGrocery = "g"
	OrderTypeFood    = "f"
)

// Courier-visible order states derived from the pick/deliver flags.
const (
	OrderStatePending   = "pending"
	OrderStatePicked    = "picked"
	OrderStateDelivered = "delivered"
)

// Withdrawal request states derived from the complete/cancel flags.
const (
	WithdrawalStatePending  = "pending"
	WithdrawalStateComplete = "complete"
	WithdrawalStateCancel   = "cancel"
)

// Reference code prefixes.
const (
	RefPrefixProfile    = "DP"
	RefPrefixDeposit    = "DPD"
	RefPrefixWithdrawal = "DPW"
	RefPrefixFine       = "DPF"
	RefPrefixTicket     = "DT"
)

// DateLayout is the wire format for dates in list payloads.
const DateLayout = "06-01-02"
