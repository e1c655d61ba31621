package models

import "time"

// PaymentEvent is published whenever a payment changes its local state
type PaymentEvent struct {
	PaymentID  string        `json:"paymentId"`
	UserID     string        `json:"userId,omitempty"`
	TxID       string        `json:"txid,omitempty"`
	Status     PaymentStatus `json:"status"`
	OccurredAt time.Time     `json:"occurredAt"`
}
