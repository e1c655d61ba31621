package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the locally recorded stage of a payment
type PaymentStatus string

const (
	PaymentStatusApproved  PaymentStatus = "approved"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// PaymentRecord is the local confirmation record of a payment that passed approve.
// It is a read model of ledger outcomes, never the source of truth.
type PaymentRecord struct {
	PaymentID      string          `json:"paymentId" db:"payment_id"`
	UserID         string          `json:"userId" db:"user_id"`
	Status         PaymentStatus   `json:"status" db:"status"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	CompletedAt    *time.Time      `json:"completedAt,omitempty" db:"completed_at"`
	TxID           string          `json:"txid,omitempty" db:"txid"`
	LedgerSnapshot json.RawMessage `json:"ledgerSnapshot,omitempty" db:"ledger_snapshot"`
}

// IsCompleted reports whether the record reached its terminal state
func (r *PaymentRecord) IsCompleted() bool {
	return r != nil && r.Status == PaymentStatusCompleted
}

// LedgerPayment is the payment network's view of a payment
type LedgerPayment struct {
	Identifier  string                 `json:"identifier"`
	UserUID     string                 `json:"user_uid"`
	Amount      decimal.Decimal        `json:"amount"`
	Memo        string                 `json:"memo"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	FromAddress string                 `json:"from_address,omitempty"`
	ToAddress   string                 `json:"to_address,omitempty"`
	Direction   string                 `json:"direction,omitempty"`
	Network     string                 `json:"network,omitempty"`
	CreatedAt   string                 `json:"created_at,omitempty"`
	Status      LedgerPaymentStatus    `json:"status"`
	Transaction *LedgerTransaction     `json:"transaction"`

	// Raw is the body exactly as returned by the ledger
	Raw json.RawMessage `json:"-"`
}

// LedgerPaymentStatus holds the lifecycle flags reported by the ledger
type LedgerPaymentStatus struct {
	DeveloperApproved   bool `json:"developer_approved"`
	TransactionVerified bool `json:"transaction_verified"`
	DeveloperCompleted  bool `json:"developer_completed"`
	Cancelled           bool `json:"cancelled"`
	UserCancelled       bool `json:"user_cancelled"`
}

// LedgerTransaction is the blockchain transaction attached to a payment
type LedgerTransaction struct {
	TxID     string `json:"txid"`
	Verified bool   `json:"verified"`
	Link     string `json:"_link,omitempty"`
}

// ApproveRequest is sent when the network asks the server to approve a payment
type ApproveRequest struct {
	PaymentID string `json:"paymentId"`
	UserID    string `json:"userId"`
}

// CompleteRequest is sent once the user submitted the blockchain transaction
type CompleteRequest struct {
	PaymentID string `json:"paymentId"`
	TxID      string `json:"txid"`
}

// ApproveResult is returned after the ledger accepted the approval
type ApproveResult struct {
	PaymentID      string          `json:"paymentId"`
	Status         PaymentStatus   `json:"status"`
	LedgerResponse json.RawMessage `json:"ledgerResponse"`
}

// CompleteResult is returned after the ledger accepted the completion
type CompleteResult struct {
	PaymentID      string          `json:"paymentId"`
	TxID           string          `json:"txid"`
	Status         PaymentStatus   `json:"status"`
	LedgerResponse json.RawMessage `json:"ledgerResponse"`
}

// VerifyResult carries the ledger's current view of a payment, unmodified
type VerifyResult struct {
	LedgerResponse json.RawMessage `json:"ledgerResponse"`
}

// Entitlement is what client features read to unlock premium functionality
type Entitlement struct {
	PaymentID     string `json:"paymentId"`
	PremiumActive bool   `json:"premiumActive"`
}
