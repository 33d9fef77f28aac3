// Package failure carries the ledger error taxonomy from services to the HTTP layer.
package failure

import (
	"errors"
	"net/http"
)

// Kind classifies a Failure so callers can react to it without parsing messages.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindInventoryConflict Kind = "inventory_conflict"
	KindTransport         Kind = "transport"
	KindReconciliation    Kind = "reconciliation"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindInternal          Kind = "internal"
)

// Failure pairs a message with its Kind and the HTTP status it maps to.
type Failure struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	cause   error
}

func newFailure(code int, kind Kind, message string, cause error) *Failure {
	return &Failure{Code: code, Kind: kind, Message: message, cause: cause}
}

var (
	InvalidPageParam        = newFailure(http.StatusBadRequest, KindValidation, "invalid page parameter", nil)
	InvalidLimitParam       = newFailure(http.StatusBadRequest, KindValidation, "invalid limit parameter", nil)
	ForbiddenError          = newFailure(http.StatusForbidden, KindForbidden, "You don't have the required permissions", nil)
	ResourceRestrictedError = newFailure(http.StatusForbidden, KindForbidden, "You don't have permission to access this resource", nil)
)

func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the cause so errors.Is keeps matching ledger sentinels.
func (e *Failure) Unwrap() error {
	return e.cause
}

// BadRequest wraps err as a validation failure; nil stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, KindValidation, err.Error(), err)
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, KindValidation, msg, nil)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, KindUnauthorized, msg, nil)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, KindForbidden, msg, nil)
}

func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, KindNotFound, msg, nil)
}

// Conflict is a 409 on input the caller can fix, such as a duplicate name.
func Conflict(msg string) error {
	return newFailure(http.StatusConflict, KindValidation, msg, nil)
}

// InventoryConflict reports that a room is no longer free for the requested dates.
// The caller has to pick another room or range; nothing is retried.
func InventoryConflict(msg string) error {
	return newFailure(http.StatusConflict, KindInventoryConflict, msg, nil)
}

// Transport wraps a store or network failure. The operation must not be assumed to have
// partially succeeded.
func Transport(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadGateway, KindTransport, "booking store unavailable: "+err.Error(), err)
}

// Reconciliation reports that inventory was released but the follow-up commit failed, so the
// room is marked free while a booking still references it. It needs manual repair.
func Reconciliation(msg string, err error) error {
	return newFailure(http.StatusInternalServerError, KindReconciliation, msg, err)
}

func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusInternalServerError, KindInternal, err.Error(), err)
}

func as(err error) (*Failure, bool) {
	var fail *Failure
	ok := errors.As(err, &fail)

	return fail, ok
}

// GetCode returns the HTTP status of err, 500 for plain errors.
func GetCode(err error) int {
	if fail, ok := as(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the failure kind of err, KindInternal for plain errors.
func GetKind(err error) Kind {
	if fail, ok := as(err); ok && fail.Kind != "" {
		return fail.Kind
	}

	return KindInternal
}

// Is reports whether err is a Failure of the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}
