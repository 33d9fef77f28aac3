package otel

import (
	"fmt"
	"time"

	"hotelledger/shared/constant"
	"hotelledger/shared/failure"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const errorKindAttribute = "error.kind"

type Scope interface {
	End()
	TraceError(err error)
	TraceIfError(err error)
	AddEvent(name string)
	SetAttribute(key string, value any)
	SetAttributes(attributes map[string]any)
}

type scopeImpl struct {
	span oteltrace.Span
}

func (s *scopeImpl) End() {
	s.span.End()
}

// TraceError records err on the span with its failure kind. Caller mistakes such as validation
// or a missing booking leave the span status untouched; only server-side kinds mark it failed.
func (s *scopeImpl) TraceError(err error) {
	kind := failure.GetKind(err)

	s.span.RecordError(err, oteltrace.WithAttributes(attribute.String(errorKindAttribute, string(kind))))
	s.span.SetAttributes(attribute.String(errorKindAttribute, string(kind)))

	if IsServerFault(kind) {
		s.span.SetStatus(codes.Error, err.Error())
	}
}

func (s *scopeImpl) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scopeImpl) AddEvent(name string) {
	s.span.AddEvent(name)
}

func (s *scopeImpl) SetAttribute(key string, value any) {
	s.span.SetAttributes(Attribute(key, value))
}

func (s *scopeImpl) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}

func NewScope(span oteltrace.Span) Scope {
	return &scopeImpl{
		span: span,
	}
}

// IsServerFault reports whether a failure kind means the ledger itself misbehaved.
func IsServerFault(kind failure.Kind) bool {
	switch kind {
	case failure.KindTransport, failure.KindReconciliation, failure.KindInternal:
		return true
	default:
		return false
	}
}

// Attribute converts a ledger value to a span attribute. Money keeps two decimals and times are
// written as calendar days.
func Attribute(key string, value any) attribute.KeyValue {
	switch val := value.(type) {
	case bool:
		return attribute.Bool(key, val)
	case string:
		return attribute.String(key, val)
	case int:
		return attribute.Int(key, val)
	case int64:
		return attribute.Int64(key, val)
	case decimal.Decimal:
		return attribute.String(key, val.StringFixed(2))
	case time.Time:
		return attribute.String(key, val.Format(constant.DayFormat))
	case []string:
		return attribute.StringSlice(key, val)
	default:
		return attribute.String(key, fmt.Sprintf("%v", val))
	}
}
