package constants

// Redis key formats
const (
	KeyPaymentRecord = "payment:record:%s" // Format: payment:record:{payment_id}
)
