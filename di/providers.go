package di

import (
	"hotelledger/config"
	"hotelledger/infras/kafka"
	"hotelledger/internal/events"
	"hotelledger/shared/cache"
)

func provideConsumer(cfg *config.Config, client kafka.Client, redisCache cache.RedisCache) *events.Consumer {
	return events.NewConsumer(client, redisCache, cfg.Kafka.ConsumerGroup)
}
