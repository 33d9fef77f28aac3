package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"hotelledger/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	poolMaxIdle = 10
	poolMaxOpen = 10
	connMaxIdle = 5 * time.Minute
)

const (
	RoleRead  = "read"
	RoleWrite = "write"
)

// Connection is the read/write pool pair every repository shares.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	return &Connection{
		Read:  Open(RoleRead, DSN(pg.Read, pg.Prefix, nil), pg.MaxRetry, pg.RetryWaitTime),
		Write: Open(RoleWrite, DSN(pg.Write, pg.Prefix, nil), pg.MaxRetry, pg.RetryWaitTime),
	}
}

// Close releases both pools.
func (c *Connection) Close() error {
	var errs []error

	if c.Read != nil {
		if err := c.Read.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close read connection: %w", err))
		}
	}

	if c.Write != nil && c.Write != c.Read {
		if err := c.Write.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close write connection: %w", err))
		}
	}

	return errors.Join(errs...)
}

// DSN renders a node as a postgres URL with escaped credentials. prefix is prepended to the
// database name; extra is merged into the query string.
func DSN(node config.PostgresNode, prefix string, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", node.SSLMode)

	if node.Timezone != "" {
		query.Set("timezone", node.Timezone)
	}

	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(node.Username, node.Password),
		Host:     net.JoinHostPort(node.Host, node.Port),
		Path:     "/" + prefix + node.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Open connects with up to maxRetry attempts spaced waitSeconds apart. It returns nil once
// the attempts are exhausted.
func Open(role, dsn string, maxRetry, waitSeconds int) *sqlx.DB {
	for attempt := 1; attempt <= max(maxRetry, 1); attempt++ {
		db, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			db.SetMaxIdleConns(poolMaxIdle)
			db.SetMaxOpenConns(poolMaxOpen)
			db.SetConnMaxIdleTime(connMaxIdle)

			log.Info().Str("role", role).Int("attempt", attempt).Msg("Connected to database")

			return db
		}

		log.Error().Err(err).Str("role", role).Int("attempt", attempt).Msg("Failed connecting to database")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	log.Error().Str("role", role).Int("maxRetry", maxRetry).Msg("Giving up connecting to database")

	return nil
}
