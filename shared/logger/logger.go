package logger

import (
	"context"
	"os"
	"time"

	"hotelledger/config"
	"hotelledger/shared/constant"
	"hotelledger/shared/session"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a console logger at trace level. SetLogLevel narrows it once the
// configuration is known.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output)
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies the configured level. Production writes JSON lines tagged with the app
// name so the collector can index them.
func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || config.Server.LogLevel == constant.Empty {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)

	if config.Server.Env == constant.ServerEnvProduction {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("app", config.App.Name).Logger()
	}
}

// Ctx returns the global logger enriched with the request id and the operator of ctx.
func Ctx(ctx context.Context) *zerolog.Logger {
	logCtx := log.Logger.With()

	if requestID := chiMiddleware.GetReqID(ctx); requestID != constant.Empty {
		logCtx = logCtx.Str("request_id", requestID)
	}

	if sess := session.FromContext(ctx); sess.Actor() != constant.Empty {
		logCtx = logCtx.Str("actor", sess.Actor())

		if sess.HotelID != constant.Empty {
			logCtx = logCtx.Str("hotel_id", sess.HotelID)
		}
	}

	logger := logCtx.Logger()

	return &logger
}
