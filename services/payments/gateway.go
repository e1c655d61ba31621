package payments

import (
	"context"
	"encoding/json"

	"github.com/piresc/lume/internal/pkg/models"
)

// LedgerGW defines the interface to the payment network API
// go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/lume/services/payments LedgerGW
type LedgerGW interface {
	GetPayment(ctx context.Context, paymentID string) (*models.LedgerPayment, error)
	ApprovePayment(ctx context.Context, paymentID string) (json.RawMessage, error)
	CompletePayment(ctx context.Context, paymentID, txID string) (json.RawMessage, error)
}

// EventGW defines the interface for publishing payment events
// go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/lume/services/payments EventGW
type EventGW interface {
	PublishPaymentApproved(ctx context.Context, event models.PaymentEvent) error
	PublishPaymentCompleted(ctx context.Context, event models.PaymentEvent) error
}
