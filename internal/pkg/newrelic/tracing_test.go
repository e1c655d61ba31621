package newrelic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpers_WithoutTransaction(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, FromContext(ctx))
	assert.NotPanics(t, func() {
		SetTransactionName(nil, "Payments.Approve")
		AddTransactionAttribute(nil, "payment.id", "P1")
		NoticeTransactionError(nil, errors.New("boom"))
	})

	calls := 0
	err := WithExternalSegment(ctx, "pi-network", "GET", "http://ledger/v2/payments/P1", func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	got, err := TraceUseCaseWithReturn(ctx, "PaymentUC.Verify", func(ctx context.Context) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestMiddleware_NilAppPassesThrough(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	handler := Middleware(nil)(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
