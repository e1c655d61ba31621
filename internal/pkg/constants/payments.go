package constants

// Payment actions accepted by the compatibility endpoint
const (
	ActionApprove  = "approve"
	ActionComplete = "complete"
	ActionVerify   = "verify"
	ActionStatus   = "status"
)

// ValidActions lists the actions in the order clients are told about them
var ValidActions = []string{ActionApprove, ActionComplete, ActionVerify, ActionStatus}

// Ledger API paths
const (
	LedgerPaymentPath  = "/v2/payments/{paymentId}"
	LedgerApprovePath  = "/v2/payments/{paymentId}/approve"
	LedgerCompletePath = "/v2/payments/{paymentId}/complete"
)
