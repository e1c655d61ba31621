package constants

// NATS Subjects
const (
	// Payment events
	SubjectPaymentApproved  = "payment.approved"
	SubjectPaymentCompleted = "payment.completed"
)
