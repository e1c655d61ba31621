package gateway

import (
	"context"

	"github.com/piresc/lume/internal/pkg/constants"
	"github.com/piresc/lume/internal/pkg/models"
	natspkg "github.com/piresc/lume/internal/pkg/nats"
	"github.com/piresc/lume/services/payments"
)

// EventGW publishes payment events to NATS
type EventGW struct {
	natsClient *natspkg.Client
}

// NewEventGW creates an event gateway. A nil client yields a publisher that drops events.
func NewEventGW(client *natspkg.Client) payments.EventGW {
	if client == nil {
		return noopEventGW{}
	}
	return &EventGW{natsClient: client}
}

// PublishPaymentApproved publishes a payment approved event to NATS
func (g *EventGW) PublishPaymentApproved(ctx context.Context, event models.PaymentEvent) error {
	return g.natsClient.PublishJSON(constants.SubjectPaymentApproved, event)
}

// PublishPaymentCompleted publishes a payment completed event to NATS
func (g *EventGW) PublishPaymentCompleted(ctx context.Context, event models.PaymentEvent) error {
	return g.natsClient.PublishJSON(constants.SubjectPaymentCompleted, event)
}

type noopEventGW struct{}

func (noopEventGW) PublishPaymentApproved(context.Context, models.PaymentEvent) error  { return nil }
func (noopEventGW) PublishPaymentCompleted(context.Context, models.PaymentEvent) error { return nil }
