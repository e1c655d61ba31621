package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/piresc/lume/internal/pkg/logger"
	nrpkg "github.com/piresc/lume/internal/pkg/newrelic"
	"go.uber.org/zap"
)

// PanicResponse is written when a handler panics
type PanicResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// PanicRecoveryWithZapMiddleware recovers from handler panics, logs the stack
// with zap and reports the panic to New Relic.
func PanicRecoveryWithZapMiddleware(zapLogger *logger.ZapLogger) echo.MiddlewareFunc {
	if zapLogger == nil {
		zapLogger = logger.NewNopLogger()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = handlePanic(c, r, zapLogger)
				}
			}()
			return next(c)
		}
	}
}

func handlePanic(c echo.Context, r interface{}, zapLogger *logger.ZapLogger) error {
	req := c.Request()
	txn := nrpkg.FromEchoContext(c)

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = req.Header.Get(echo.HeaderXRequestID)
	}

	zapLogger.WithNewRelicContext(txn).Error("Panic recovered during request processing",
		zap.Any("panic_value", r),
		zap.String("panic_type", fmt.Sprintf("%T", r)),
		zap.String("stack_trace", string(debug.Stack())),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.String("client_ip", c.RealIP()),
		zap.String("user_agent", req.UserAgent()),
		zap.String("request_id", requestID),
	)

	if txn != nil {
		txn.NoticeError(fmt.Errorf("panic: %v", r))
		txn.AddAttribute("panic.recovered", true)
	}

	if c.Response().Committed {
		return nil
	}
	return c.JSON(http.StatusInternalServerError, PanicResponse{
		Success: false,
		Error:   "Internal Server Error",
		Message: "An unexpected error occurred while processing your request",
	})
}
