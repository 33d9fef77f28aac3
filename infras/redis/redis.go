package redis

import (
	"context"
	"net"
	"time"

	"hotelledger/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	dialTimeout = 5 * time.Second
	ioTimeout   = 3 * time.Second
	pingTimeout = 5 * time.Second
)

// Options maps the primary cache node onto client options.
func Options(node config.Redis) *goRedis.Options {
	return &goRedis.Options{
		Addr:         net.JoinHostPort(node.Host, node.Port),
		Password:     node.Password,
		DB:           node.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	}
}

// New connects to the primary cache node. The cache backs rate limiting, so an unreachable
// node stops the process.
func New(cfg *config.Config) *goRedis.Client {
	opts := Options(cfg.Cache.Redis.Primary)
	client := goRedis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", opts.Addr).Msg("Failed to connect to Redis")
	}

	log.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("Connected to Redis")

	return client
}
