package payments

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind groups errors by who is at fault
type Kind string

const (
	KindInput        Kind = "input"
	KindBusinessRule Kind = "business_rule"
	KindUpstream     Kind = "upstream"
	KindNotFound     Kind = "not_found"
	KindInternal     Kind = "internal"
)

// Reason codes returned to clients
const (
	ReasonMissingFields          = "missing_fields"
	ReasonMalformedBody          = "malformed_body"
	ReasonInvalidAction          = "invalid_action"
	ReasonMethodNotAllowed       = "method_not_allowed"
	ReasonAlreadyApproved        = "already_approved"
	ReasonCancelled              = "cancelled"
	ReasonAmountMismatch         = "amount_mismatch"
	ReasonTxIDMismatch           = "txid_mismatch"
	ReasonTransactionNotVerified = "transaction_not_verified"
	ReasonLedgerUnreachable      = "ledger_unreachable"
	ReasonLedgerTimeout          = "ledger_timeout"
	ReasonLedgerError            = "ledger_error"
	ReasonNotTrackedLocally      = "not_tracked_locally"
	ReasonStoreUnavailable       = "store_unavailable"
)

// Error is the single error type crossing the usecase boundary
type Error struct {
	Kind    Kind
	Reason  string
	Message string
	// Details is attached to the response for diagnosis, e.g. the ledger error body
	Details interface{}
	// StatusCode is the ledger HTTP status for upstream errors, 0 otherwise
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Reason, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to the status returned to clients
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInput, KindBusinessRule:
		return http.StatusBadRequest
	case KindUpstream:
		return http.StatusBadGateway
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func InputError(message string, required ...string) *Error {
	e := &Error{Kind: KindInput, Reason: ReasonMissingFields, Message: message}
	if len(required) > 0 {
		e.Details = map[string]interface{}{"required": required}
	}
	return e
}

// MalformedBodyError reports a request body that could not be decoded
func MalformedBodyError(err error) *Error {
	return &Error{Kind: KindInput, Reason: ReasonMalformedBody, Message: "Invalid request payload", Err: err}
}

func BusinessRuleError(reason, message string, details interface{}) *Error {
	return &Error{Kind: KindBusinessRule, Reason: reason, Message: message, Details: details}
}

// UpstreamError wraps a ledger failure. body is the raw ledger payload, if any.
func UpstreamError(reason string, statusCode int, body []byte, err error) *Error {
	e := &Error{
		Kind:       KindUpstream,
		Reason:     reason,
		Message:    "payment ledger request failed",
		StatusCode: statusCode,
		Err:        err,
	}
	if len(body) > 0 {
		if json.Valid(body) {
			e.Details = json.RawMessage(body)
		} else {
			e.Details = string(body)
		}
	}
	return e
}

func NotFoundError(reason, message string) *Error {
	return &Error{Kind: KindNotFound, Reason: reason, Message: message}
}

func InternalError(reason, message string, err error) *Error {
	return &Error{Kind: KindInternal, Reason: reason, Message: message, Err: err}
}

// AsError extracts a *Error from err
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// HasReason reports whether err is a *Error with the given reason
func HasReason(err error, reason string) bool {
	e, ok := AsError(err)
	return ok && e.Reason == reason
}
