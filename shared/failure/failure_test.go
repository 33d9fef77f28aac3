package failure_test

import (
	"errors"
	"fmt"
	"hotelledger/shared/failure"
	"net/http"
	"testing"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		kind    failure.Kind
	}{
		{name: "InvalidPageParam", failure: failure.InvalidPageParam, code: http.StatusBadRequest, kind: failure.KindValidation},
		{name: "InvalidLimitParam", failure: failure.InvalidLimitParam, code: http.StatusBadRequest, kind: failure.KindValidation},
		{name: "ForbiddenError", failure: failure.ForbiddenError, code: http.StatusForbidden, kind: failure.KindForbidden},
		{name: "ResourceRestrictedError", failure: failure.ResourceRestrictedError, code: http.StatusForbidden, kind: failure.KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, tt.failure.Code)
			}

			if tt.failure.Kind != tt.kind {
				t.Errorf("expected kind to be %s, got %s", tt.kind, tt.failure.Kind)
			}
		})
	}
}

func TestBadRequest(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("expected nil for nil input")
	}

	errOverpaid := errors.New("total paid exceeds total bill")
	result := failure.BadRequest(errOverpaid)

	if failure.GetCode(result) != http.StatusBadRequest {
		t.Errorf("expected code %d, got %d", http.StatusBadRequest, failure.GetCode(result))
	}

	if !errors.Is(result, errOverpaid) {
		t.Error("expected BadRequest to keep the wrapped cause reachable through errors.Is")
	}
}

func TestKinds(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		code int
		kind failure.Kind
	}{
		{name: "validation", err: failure.BadRequestFromString("bad"), code: http.StatusBadRequest, kind: failure.KindValidation},
		{name: "not found", err: failure.NotFound("booking not found"), code: http.StatusNotFound, kind: failure.KindNotFound},
		{name: "inventory conflict", err: failure.InventoryConflict("room taken"), code: http.StatusConflict, kind: failure.KindInventoryConflict},
		{name: "transport", err: failure.Transport(cause), code: http.StatusBadGateway, kind: failure.KindTransport},
		{name: "reconciliation", err: failure.Reconciliation("inventory diverged", cause), code: http.StatusInternalServerError, kind: failure.KindReconciliation},
		{name: "unauthorized", err: failure.Unauthorized("token expired"), code: http.StatusUnauthorized, kind: failure.KindUnauthorized},
		{name: "internal", err: failure.InternalError(cause), code: http.StatusInternalServerError, kind: failure.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("service layer: %w", tt.err)

			if got := failure.GetCode(wrapped); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}

			if got := failure.GetKind(wrapped); got != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, got)
			}

			if !failure.Is(wrapped, tt.kind) {
				t.Errorf("expected failure.Is to match kind %s", tt.kind)
			}
		})
	}
}

func TestTransportNil(t *testing.T) {
	if failure.Transport(nil) != nil {
		t.Error("expected nil for nil input")
	}
}

func TestGetCode_PlainError(t *testing.T) {
	err := errors.New("plain")

	if failure.GetCode(err) != http.StatusInternalServerError {
		t.Errorf("expected %d for plain error", http.StatusInternalServerError)
	}

	if failure.GetKind(err) != failure.KindInternal {
		t.Errorf("expected %s for plain error", failure.KindInternal)
	}
}
