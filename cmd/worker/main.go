package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hotelledger/config"
	"hotelledger/di"
	"hotelledger/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if !cfg.Kafka.Enable {
		log.Fatal().Msg("Kafka is disabled, nothing to consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := di.InitializeWorker()

	log.Info().Str("group", cfg.Kafka.ConsumerGroup).Msg("Starting ledger event worker.")

	consumer.Run(ctx)

	log.Info().Msg("Ledger event worker stopped.")
}
