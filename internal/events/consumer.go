package events

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"hotelledger/infras/kafka"
	"hotelledger/shared"
	"hotelledger/shared/cache"
	"hotelledger/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Consumer drops cached statements, summaries and dashboards touched by ledger events, so every
// API instance sees a change made on another one.
type Consumer struct {
	client        kafka.Client
	cache         cache.RedisCache
	consumerGroup string
}

func NewConsumer(client kafka.Client, cache cache.RedisCache, consumerGroup string) *Consumer {
	return &Consumer{client: client, cache: cache, consumerGroup: consumerGroup}
}

// Run consumes every ledger topic until ctx is done.
func (c *Consumer) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for _, topic := range Topics {
		wg.Add(1)

		go func(topic string) {
			defer wg.Done()

			c.client.Consume(ctx, c.consumerGroup, c.client.Topic(topic), c.Handle)
		}(topic)
	}

	wg.Wait()
}

func (c *Consumer) Handle(ctx context.Context, msg kafkaGo.Message) error {
	if strings.HasSuffix(msg.Topic, TopicPaymentRecorded) {
		event, err := kafka.Decode[PaymentEvent](msg)
		if err != nil {
			return fmt.Errorf("failed to decode payment event: %w", err)
		}

		log.Info().Str("bookingID", event.BookingID).Str("date", event.Date).Str("amount", event.DailyAmount.StringFixed(2)).Msg("payment recorded")

		c.invalidate(ctx, event.HotelID)

		return nil
	}

	event, err := kafka.Decode[BookingEvent](msg)
	if err != nil {
		return fmt.Errorf("failed to decode booking event: %w", err)
	}

	log.Info().Str("topic", msg.Topic).Str("bookingID", event.BookingID).Str("actor", event.Actor).Msg("booking changed")

	c.invalidate(ctx, event.HotelID)

	return nil
}

// invalidate drops every cached view of the hotel. Summaries chain day to day, so one change
// can move the balances of all later days.
func (c *Consumer) invalidate(ctx context.Context, hotelID string) {
	shared.InvalidateCaches(ctx, c.cache, shared.BuildCacheKey(constant.CachePrefixStatement, hotelID))
	shared.InvalidateCaches(ctx, c.cache, shared.BuildCacheKey(constant.CachePrefixSummary, hotelID))
	shared.InvalidateCaches(ctx, c.cache, constant.CachePrefixDashboard)
}
