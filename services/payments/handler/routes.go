package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/lume/services/payments"
	httpHandler "github.com/piresc/lume/services/payments/handler/http"
)

// Handler combines all handlers for the payments service
type Handler struct {
	paymentHTTP *httpHandler.PaymentHandler
}

// NewHandler creates a new combined handler
func NewHandler(paymentUC payments.PaymentUC) *Handler {
	return &Handler{
		paymentHTTP: httpHandler.NewPaymentHandler(paymentUC),
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	// Single endpoint kept for existing clients
	api.Any("/payments", h.paymentHTTP.Dispatch)

	paymentsGroup := api.Group("/payments")
	paymentsGroup.POST("/approve", h.paymentHTTP.Approve)
	paymentsGroup.POST("/complete", h.paymentHTTP.Complete)
	paymentsGroup.GET("/verify", h.paymentHTTP.Verify)
	paymentsGroup.GET("/status", h.paymentHTTP.Status)
	paymentsGroup.GET("/entitlement", h.paymentHTTP.Entitlement)
}
