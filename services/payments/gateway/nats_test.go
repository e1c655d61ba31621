package gateway

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/piresc/lume/internal/pkg/constants"
	"github.com/piresc/lume/internal/pkg/models"
	natspkg "github.com/piresc/lume/internal/pkg/nats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupNATS(t *testing.T) *natspkg.Client {
	t.Helper()
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	s := natsserver.RunServer(&opts)
	t.Cleanup(s.Shutdown)

	client, err := natspkg.NewClient(s.ClientURL(), "lume-payments-test")
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

func subscribe(t *testing.T, client *natspkg.Client, subject string) <-chan *nats.Msg {
	t.Helper()
	ch := make(chan *nats.Msg, 1)
	_, err := client.GetConn().Subscribe(subject, func(msg *nats.Msg) { ch <- msg })
	require.NoError(t, err)
	require.NoError(t, client.GetConn().Flush())
	return ch
}

func TestEventGW_PublishPaymentApproved(t *testing.T) {
	client := setupNATS(t)
	msgs := subscribe(t, client, constants.SubjectPaymentApproved)
	gw := NewEventGW(client)

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	err := gw.PublishPaymentApproved(context.Background(), models.PaymentEvent{
		PaymentID:  "P1",
		UserID:     "U1",
		Status:     models.PaymentStatusApproved,
		OccurredAt: at,
	})
	require.NoError(t, err)

	select {
	case msg := <-msgs:
		var event models.PaymentEvent
		require.NoError(t, json.Unmarshal(msg.Data, &event))
		assert.Equal(t, "P1", event.PaymentID)
		assert.Equal(t, "U1", event.UserID)
		assert.Equal(t, models.PaymentStatusApproved, event.Status)
		assert.True(t, at.Equal(event.OccurredAt))
	case <-time.After(2 * time.Second):
		t.Fatal("approved event not received")
	}
}

func TestEventGW_PublishPaymentCompleted(t *testing.T) {
	client := setupNATS(t)
	msgs := subscribe(t, client, constants.SubjectPaymentCompleted)
	gw := NewEventGW(client)

	err := gw.PublishPaymentCompleted(context.Background(), models.PaymentEvent{
		PaymentID: "P1",
		TxID:      "T1",
		Status:    models.PaymentStatusCompleted,
	})
	require.NoError(t, err)

	select {
	case msg := <-msgs:
		assert.Contains(t, string(msg.Data), `"txid":"T1"`)
	case <-time.After(2 * time.Second):
		t.Fatal("completed event not received")
	}
}

func TestEventGW_NilClientDropsEvents(t *testing.T) {
	gw := NewEventGW(nil)

	assert.NoError(t, gw.PublishPaymentApproved(context.Background(), models.PaymentEvent{PaymentID: "P1"}))
	assert.NoError(t, gw.PublishPaymentCompleted(context.Background(), models.PaymentEvent{PaymentID: "P1"}))
}
