package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotelledger/infras/otel"
	"hotelledger/shared/failure"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func record(t *testing.T, fn func(scope otel.Scope)) trace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "booking.Create")
	scope := otel.NewScope(span)

	fn(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return spans[0]
}

func attributeValue(span trace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}

	return attribute.Value{}, false
}

func TestTraceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   string
		wantStatus codes.Code
	}{
		{name: "validation", err: failure.BadRequestFromString("check-out before check-in"), wantKind: "validation", wantStatus: codes.Unset},
		{name: "inventory conflict", err: failure.InventoryConflict("room taken"), wantKind: "inventory_conflict", wantStatus: codes.Unset},
		{name: "transport", err: failure.Transport(errors.New("connection reset")), wantKind: "transport", wantStatus: codes.Error},
		{name: "reconciliation", err: failure.Reconciliation("inventory diverged", nil), wantKind: "reconciliation", wantStatus: codes.Error},
		{name: "plain error", err: errors.New("boom"), wantKind: "internal", wantStatus: codes.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := record(t, func(scope otel.Scope) { scope.TraceError(tt.err) })

			kind, ok := attributeValue(span, "error.kind")
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, kind.AsString())
			assert.Equal(t, tt.wantStatus, span.Status().Code)
			require.Len(t, span.Events(), 1)
		})
	}
}

func TestTraceIfError_Nil(t *testing.T) {
	span := record(t, func(scope otel.Scope) { scope.TraceIfError(nil) })

	assert.Empty(t, span.Events())
	assert.Equal(t, codes.Unset, span.Status().Code)
}

func TestSetAttributes(t *testing.T) {
	checkIn := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	span := record(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"booking.nights":    3,
			"booking.total":     decimal.NewFromInt(3000),
			"booking.check_in":  checkIn,
			"booking.dates":     []string{"2024-01-10", "2024-01-11"},
			"booking.confirmed": true,
		})
	})

	nights, _ := attributeValue(span, "booking.nights")
	assert.Equal(t, int64(3), nights.AsInt64())

	total, _ := attributeValue(span, "booking.total")
	assert.Equal(t, "3000.00", total.AsString())

	day, _ := attributeValue(span, "booking.check_in")
	assert.Equal(t, "2024-01-10", day.AsString())

	dates, _ := attributeValue(span, "booking.dates")
	assert.Equal(t, []string{"2024-01-10", "2024-01-11"}, dates.AsStringSlice())

	confirmed, _ := attributeValue(span, "booking.confirmed")
	assert.True(t, confirmed.AsBool())
}
