package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/piresc/lume/internal/pkg/circuitbreaker"
	"github.com/piresc/lume/internal/pkg/models"
	"github.com/piresc/lume/services/payments"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ledgerPaymentJSON = `{
	"identifier": "P1",
	"user_uid": "pi-user-1",
	"amount": 0.001,
	"memo": "LUME_TASBIH_PREMIUM",
	"metadata": {"product": "lume_plus"},
	"status": {
		"developer_approved": true,
		"transaction_verified": true,
		"developer_completed": false,
		"cancelled": false,
		"user_cancelled": false
	},
	"transaction": {"txid": "T1", "verified": true, "_link": "https://ledger/tx/T1"}
}`

func newTestGateway(t *testing.T, handler http.HandlerFunc) *LedgerGateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewLedgerGateway(models.LedgerConfig{
		BaseURL: server.URL + "/",
		APIKey:  "secret-key",
		Timeout: 1,
	}, nil)
}

func TestLedgerGateway_GetPayment(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/payments/P1", r.URL.Path)
		assert.Equal(t, "Key secret-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, ledgerPaymentJSON)
	})

	payment, err := gw.GetPayment(context.Background(), "P1")
	require.NoError(t, err)

	assert.Equal(t, "P1", payment.Identifier)
	assert.Equal(t, "pi-user-1", payment.UserUID)
	assert.True(t, payment.Amount.Equal(decimal.RequireFromString("0.001")))
	assert.True(t, payment.Status.DeveloperApproved)
	require.NotNil(t, payment.Transaction)
	assert.Equal(t, "T1", payment.Transaction.TxID)
	assert.True(t, payment.Transaction.Verified)
	assert.JSONEq(t, ledgerPaymentJSON, string(payment.Raw))
}

func TestLedgerGateway_ApprovePaymentSendsNoBody(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/payments/P1/approve", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)

		_, _ = io.WriteString(w, `{"identifier":"P1","status":{"developer_approved":true}}`)
	})

	raw, err := gw.ApprovePayment(context.Background(), "P1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"identifier":"P1","status":{"developer_approved":true}}`, string(raw))
}

func TestLedgerGateway_CompletePaymentSendsTxID(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/payments/P1/complete", r.URL.Path)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"txid": "T1"}, body)

		_, _ = io.WriteString(w, `{"identifier":"P1","status":{"developer_completed":true}}`)
	})

	raw, err := gw.CompletePayment(context.Background(), "P1", "T1")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "developer_completed")
}

func TestLedgerGateway_ErrorPayloadIsAttached(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"payment_not_found","error_message":"No payment"}`)
	})

	_, err := gw.GetPayment(context.Background(), "P404")
	require.Error(t, err)

	perr, ok := payments.AsError(err)
	require.True(t, ok)
	assert.Equal(t, payments.KindUpstream, perr.Kind)
	assert.Equal(t, payments.ReasonLedgerError, perr.Reason)
	assert.Equal(t, http.StatusNotFound, perr.StatusCode)
	assert.JSONEq(t, `{"error":"payment_not_found","error_message":"No payment"}`,
		string(perr.Details.(json.RawMessage)))
}

func TestLedgerGateway_ServerErrorIsLedgerError(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "upstream exploded")
	})

	_, err := gw.ApprovePayment(context.Background(), "P1")

	perr, ok := payments.AsError(err)
	require.True(t, ok)
	assert.Equal(t, payments.ReasonLedgerError, perr.Reason)
	assert.Equal(t, http.StatusInternalServerError, perr.StatusCode)
	assert.Equal(t, "upstream exploded", perr.Details)
}

func TestLedgerGateway_Timeout(t *testing.T) {
	release := make(chan struct{})
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := gw.GetPayment(ctx, "P1")
	assert.True(t, payments.HasReason(err, payments.ReasonLedgerTimeout), "got %v", err)
}

func TestLedgerGateway_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	gw := NewLedgerGateway(models.LedgerConfig{BaseURL: url, APIKey: "k", Timeout: 1}, nil)

	_, err := gw.GetPayment(context.Background(), "P1")
	assert.True(t, payments.HasReason(err, payments.ReasonLedgerUnreachable), "got %v", err)
}

func TestLedgerGateway_OpenBreakerSkipsNetwork(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := circuitbreaker.DefaultConfig("pi-ledger")
	cfg.FailureThreshold = 2
	cfg.Timeout = time.Minute
	gw := NewLedgerGateway(models.LedgerConfig{BaseURL: server.URL, APIKey: "k", Timeout: 1},
		circuitbreaker.New(cfg, nil))

	for i := 0; i < 2; i++ {
		_, err := gw.GetPayment(context.Background(), "P1")
		assert.True(t, payments.HasReason(err, payments.ReasonLedgerError))
	}

	_, err := gw.GetPayment(context.Background(), "P1")
	assert.True(t, payments.HasReason(err, payments.ReasonLedgerUnreachable), "got %v", err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, "OPEN", gw.Stats().State)
}

func TestLedgerGateway_ClientErrorsDoNotTripBreaker(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"already_approved"}`)
	})

	for i := 0; i < 10; i++ {
		_, err := gw.ApprovePayment(context.Background(), "P1")
		assert.True(t, payments.HasReason(err, payments.ReasonLedgerError))
	}
	assert.Equal(t, "CLOSED", gw.Stats().State)
}
