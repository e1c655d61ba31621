package logger

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// ZapEchoMiddleware logs every request handled by Echo
func ZapEchoMiddleware(logger *ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			path := c.Request().URL.Path
			if raw := c.Request().URL.RawQuery; raw != "" {
				path = path + "?" + raw
			}

			err := next(c)
			if err != nil {
				// let Echo write the error response so the logged status is final
				c.Error(err)
			}

			txn := newrelic.FromContext(c.Request().Context())
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			if txn != nil {
				txn.AddAttribute("request_id", requestID)
			}

			logger.LogHTTPRequest(txn, c.Request().Method, path, c.RealIP(), requestID,
				c.Response().Status, time.Since(start), err)

			return nil
		}
	}
}
