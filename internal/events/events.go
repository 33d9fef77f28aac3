// Package events publishes ledger changes to Kafka and consumes them in the worker.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"time"

	"hotelledger/config"
	"hotelledger/infras/kafka"
	"hotelledger/infras/otel"
	bookingModel "hotelledger/internal/domains/booking/model"
	"hotelledger/shared/constant"
	"hotelledger/shared/timezone"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	TopicBookingCreated   = "booking.created"
	TopicBookingUpdated   = "booking.updated"
	TopicBookingCanceled  = "booking.canceled"
	TopicBookingConfirmed = "booking.confirmed"
	TopicPaymentRecorded  = "payment.recorded"
)

// Topics lists every topic the worker subscribes to.
var Topics = []string{
	TopicBookingCreated,
	TopicBookingUpdated,
	TopicBookingCanceled,
	TopicBookingConfirmed,
	TopicPaymentRecorded,
}

type BookingEvent struct {
	BookingID    string          `json:"bookingID"`
	BookingNo    string          `json:"bookingNo"`
	HotelID      string          `json:"hotelID"`
	RoomID       string          `json:"roomID"`
	CheckInDate  string          `json:"checkInDate"`
	CheckOutDate string          `json:"checkOutDate"`
	StatusID     int             `json:"statusID"`
	TotalBill    decimal.Decimal `json:"totalBill"`
	TotalPaid    decimal.Decimal `json:"totalPaid"`
	Actor        string          `json:"actor"`
	OccurredAt   time.Time       `json:"occurredAt"`
}

func NewBookingEvent(b bookingModel.Booking, actor string) BookingEvent {
	return BookingEvent{
		BookingID:    b.ID,
		BookingNo:    b.BookingNo,
		HotelID:      b.HotelID,
		RoomID:       b.RoomNumberID,
		CheckInDate:  timezone.FormatDay(b.CheckInDate),
		CheckOutDate: timezone.FormatDay(b.CheckOutDate),
		StatusID:     int(b.StatusID),
		TotalBill:    b.TotalBill,
		TotalPaid:    b.TotalPaid,
		Actor:        actor,
		OccurredAt:   timezone.Now(),
	}
}

type PaymentEvent struct {
	BookingID   string          `json:"bookingID"`
	HotelID     string          `json:"hotelID"`
	Date        string          `json:"date"`
	DailyAmount decimal.Decimal `json:"dailyAmount"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	Actor       string          `json:"actor"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

type publisherImpl struct {
	client kafka.Client
	otel   otel.Otel
}

type noopPublisher struct{}

// NewPublisher returns a Kafka publisher, or one that drops events when Kafka is disabled.
func NewPublisher(cfg *config.Config, client kafka.Client, otel otel.Otel) Publisher {
	if !cfg.Kafka.Enable || client == nil {
		return noopPublisher{}
	}

	return &publisherImpl{client: client, otel: otel}
}

func (p *publisherImpl) Publish(ctx context.Context, topic, key string, payload any) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("topic", topic)

	return p.client.SendMessages(ctx, p.client.Topic(topic), kafka.Message{Key: key, Value: payload}) //nolint:wrapcheck
}

func (noopPublisher) Publish(_ context.Context, topic, key string, _ any) error {
	log.Debug().Str("topic", topic).Str("key", key).Msg("kafka disabled, event dropped")

	return nil
}

// PublishAsync sends the event in the background so the request does not wait on the broker.
func PublishAsync(ctx context.Context, publisher Publisher, topic, key string, payload any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := publisher.Publish(c, topic, key, payload); err != nil {
			log.Error().Err(err).Str("topic", topic).Str("key", key).Msg("failed to publish event")
		}
	}()
}
