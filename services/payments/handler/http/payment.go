package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/lume/internal/pkg/constants"
	"github.com/piresc/lume/internal/pkg/logger"
	"github.com/piresc/lume/internal/pkg/models"
	nrpkg "github.com/piresc/lume/internal/pkg/newrelic"
	"github.com/piresc/lume/internal/utils"
	"github.com/piresc/lume/services/payments"
)

// InvalidActionResponse is returned by the dispatcher for an unknown action
type InvalidActionResponse struct {
	utils.ErrorResponse
	ValidActions []string `json:"validActions"`
}

// PaymentHandler handles HTTP requests for payment operations
type PaymentHandler struct {
	paymentUC payments.PaymentUC
}

// NewPaymentHandler creates a new payment HTTP handler
func NewPaymentHandler(paymentUC payments.PaymentUC) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: paymentUC,
	}
}

// Dispatch serves the single-endpoint surface selected by the action query parameter
func (h *PaymentHandler) Dispatch(c echo.Context) error {
	if c.Request().Method == http.MethodOptions {
		return c.NoContent(http.StatusOK)
	}

	action := c.QueryParam("action")

	switch action {
	case constants.ActionApprove, constants.ActionComplete:
		if c.Request().Method != http.MethodPost {
			return utils.ReasonErrorResponse(c, http.StatusMethodNotAllowed, "Method not allowed",
				payments.ReasonMethodNotAllowed, nil)
		}
		if action == constants.ActionApprove {
			return h.Approve(c)
		}
		return h.Complete(c)
	case constants.ActionVerify:
		return h.Verify(c)
	case constants.ActionStatus:
		return h.Status(c)
	default:
		return c.JSON(http.StatusBadRequest, InvalidActionResponse{
			ErrorResponse: utils.ErrorResponse{
				Success: false,
				Error:   "Invalid action",
				Reason:  payments.ReasonInvalidAction,
				Code:    http.StatusBadRequest,
			},
			ValidActions: constants.ValidActions,
		})
	}
}

// Approve handles the server-side approval callback
func (h *PaymentHandler) Approve(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Payments.Approve")

	var req models.ApproveRequest
	if err := c.Bind(&req); err != nil {
		return h.errorResponse(c, payments.MalformedBodyError(err))
	}
	nrpkg.AddTransactionAttribute(txn, "payment.id", req.PaymentID)

	result, err := h.paymentUC.Approve(c.Request().Context(), req)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment approved", result)
}

// Complete handles the server-side completion callback
func (h *PaymentHandler) Complete(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Payments.Complete")

	var req models.CompleteRequest
	if err := c.Bind(&req); err != nil {
		return h.errorResponse(c, payments.MalformedBodyError(err))
	}
	nrpkg.AddTransactionAttribute(txn, "payment.id", req.PaymentID)

	result, err := h.paymentUC.Complete(c.Request().Context(), req)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment completed", result)
}

// Verify returns the ledger's current view of a payment
func (h *PaymentHandler) Verify(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Payments.Verify")

	result, err := h.paymentUC.Verify(c.Request().Context(), c.QueryParam("paymentId"))
	if err != nil {
		return h.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment retrieved from ledger", result)
}

// Status returns the locally recorded payment
func (h *PaymentHandler) Status(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Payments.Status")

	record, err := h.paymentUC.Status(c.Request().Context(), c.QueryParam("paymentId"))
	if err != nil {
		return h.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment status retrieved", record)
}

// Entitlement reports whether a payment unlocks premium features
func (h *PaymentHandler) Entitlement(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Payments.Entitlement")

	result, err := h.paymentUC.Entitlement(c.Request().Context(), c.QueryParam("paymentId"))
	if err != nil {
		return h.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Entitlement retrieved", result)
}

func (h *PaymentHandler) errorResponse(c echo.Context, err error) error {
	nrpkg.NoticeTransactionError(nrpkg.FromEchoContext(c), err)

	perr, ok := payments.AsError(err)
	if !ok {
		logger.ErrorCtx(c.Request().Context(), "Unclassified payment error",
			logger.String("path", c.Request().URL.Path), logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Internal server error")
	}

	return utils.ReasonErrorResponse(c, perr.HTTPStatus(), perr.Message, perr.Reason, perr.Details)
}
