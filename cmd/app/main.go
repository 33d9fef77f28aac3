package main

import (
	"hotelledger/config"
	"hotelledger/di"
	"hotelledger/helper"
	"hotelledger/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Hotel Ledger API
// @version 1.0
// @description Booking ledger, room inventory and daily statements for hotel front desks.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
