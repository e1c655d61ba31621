package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/piresc/lume/internal/pkg/circuitbreaker"
	"github.com/piresc/lume/internal/pkg/constants"
	"github.com/piresc/lume/internal/pkg/logger"
	"github.com/piresc/lume/internal/pkg/models"
	nrpkg "github.com/piresc/lume/internal/pkg/newrelic"
	"github.com/piresc/lume/services/payments"
)

const ledgerLibrary = "pi-network"

var errLedgerServer = errors.New("ledger returned a server error")

// LedgerGateway talks to the payment network API
type LedgerGateway struct {
	client  *resty.Client
	breaker *circuitbreaker.CircuitBreaker
	baseURL string
}

var _ payments.LedgerGW = (*LedgerGateway)(nil)

// NewLedgerGateway creates a ledger client. Every request carries the API key and
// is bounded by cfg.Timeout seconds.
func NewLedgerGateway(cfg models.LedgerConfig, breaker *circuitbreaker.CircuitBreaker) *LedgerGateway {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetAuthScheme("Key").
		SetAuthToken(cfg.APIKey).
		SetHeader("Accept", "application/json")

	if breaker == nil {
		breaker = NewLedgerBreaker(logger.GetGlobalLogger())
	}

	return &LedgerGateway{
		client:  client,
		breaker: breaker,
		baseURL: baseURL,
	}
}

// NewLedgerBreaker returns a breaker that ignores callers giving up
func NewLedgerBreaker(l *logger.ZapLogger) *circuitbreaker.CircuitBreaker {
	cfg := circuitbreaker.DefaultConfig("pi-ledger")
	cfg.IsFailure = func(err error) bool {
		return err != nil && !errors.Is(err, context.Canceled)
	}
	return circuitbreaker.New(cfg, l)
}

// GetPayment fetches the ledger's view of a payment
func (g *LedgerGateway) GetPayment(ctx context.Context, paymentID string) (*models.LedgerPayment, error) {
	body, err := g.do(ctx, http.MethodGet, constants.LedgerPaymentPath, paymentID, nil)
	if err != nil {
		return nil, err
	}

	var payment models.LedgerPayment
	if err := json.Unmarshal(body, &payment); err != nil {
		return nil, payments.UpstreamError(payments.ReasonLedgerError, http.StatusOK, body,
			fmt.Errorf("failed to decode ledger payment: %w", err))
	}
	payment.Raw = body

	return &payment, nil
}

// ApprovePayment marks the payment as approved by the developer
func (g *LedgerGateway) ApprovePayment(ctx context.Context, paymentID string) (json.RawMessage, error) {
	body, err := g.do(ctx, http.MethodPost, constants.LedgerApprovePath, paymentID, nil)
	if err != nil {
		return nil, err
	}
	return rawJSON(body), nil
}

// CompletePayment tells the ledger the transaction was accepted
func (g *LedgerGateway) CompletePayment(ctx context.Context, paymentID, txID string) (json.RawMessage, error) {
	body, err := g.do(ctx, http.MethodPost, constants.LedgerCompletePath, paymentID, map[string]string{"txid": txID})
	if err != nil {
		return nil, err
	}
	return rawJSON(body), nil
}

// Stats exposes the breaker state for health reporting
func (g *LedgerGateway) Stats() circuitbreaker.Stats {
	return g.breaker.Stats()
}

func (g *LedgerGateway) do(ctx context.Context, method, path, paymentID string, body interface{}) ([]byte, error) {
	endpoint := g.baseURL + strings.ReplaceAll(path, "{paymentId}", paymentID)

	start := time.Now()
	var resp *resty.Response
	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		return nrpkg.WithExternalSegment(ctx, ledgerLibrary, method, endpoint, func() error {
			req := g.client.R().
				SetContext(ctx).
				SetPathParam("paymentId", paymentID)
			if body != nil {
				req.SetBody(body)
			}

			r, err := req.Execute(method, path)
			if err != nil {
				return err
			}
			resp = r
			if r.StatusCode() >= http.StatusInternalServerError {
				return errLedgerServer
			}
			return nil
		})
	})

	status := 0
	if resp != nil {
		status = resp.StatusCode()
	}
	logger.Debug("Ledger request finished",
		logger.PaymentID(paymentID),
		logger.String("method", method),
		logger.Int("status", status),
		logger.Duration("elapsed", time.Since(start)))

	switch {
	case err == nil:
	case errors.Is(err, errLedgerServer):
		return nil, g.responseError(ctx, method, paymentID, resp)
	case errors.Is(err, circuitbreaker.ErrCircuitBreakerOpen), errors.Is(err, circuitbreaker.ErrTooManyRequests):
		logger.WarnCtx(ctx, "Ledger circuit open, request not sent",
			logger.PaymentID(paymentID), logger.String("method", method))
		return nil, payments.UpstreamError(payments.ReasonLedgerUnreachable, 0, nil, err)
	case isTimeout(err):
		logger.WarnCtx(ctx, "Ledger request timed out",
			logger.PaymentID(paymentID), logger.String("method", method), logger.Err(err))
		return nil, payments.UpstreamError(payments.ReasonLedgerTimeout, 0, nil, err)
	default:
		logger.WarnCtx(ctx, "Ledger request failed",
			logger.PaymentID(paymentID), logger.String("method", method), logger.Err(err))
		return nil, payments.UpstreamError(payments.ReasonLedgerUnreachable, 0, nil, err)
	}

	if resp.IsError() {
		return nil, g.responseError(ctx, method, paymentID, resp)
	}
	return resp.Body(), nil
}

func (g *LedgerGateway) responseError(ctx context.Context, method, paymentID string, resp *resty.Response) error {
	logger.WarnCtx(ctx, "Ledger returned an error",
		logger.PaymentID(paymentID),
		logger.String("method", method),
		logger.Int("status", resp.StatusCode()),
		logger.String("body", string(resp.Body())))

	return payments.UpstreamError(payments.ReasonLedgerError, resp.StatusCode(), resp.Body(),
		fmt.Errorf("ledger responded %s", resp.Status()))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func rawJSON(body []byte) json.RawMessage {
	if len(body) == 0 || !json.Valid(body) {
		return nil
	}
	return json.RawMessage(body)
}
