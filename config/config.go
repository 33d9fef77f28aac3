package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const envPrefix = ""

type Config struct {
	Server   Server   `envconfig:"SERVER"`
	App      App      `envconfig:"APP"`
	Ledger   Ledger   `envconfig:"LEDGER"`
	Cache    Cache    `envconfig:"CACHE"`
	JWT      JWT      `envconfig:"JWT"`
	DB       DB       `envconfig:"DB"`
	Kafka    Kafka    `envconfig:"KAFKA"`
	External External `envconfig:"EXTERNAL"`
}

type Server struct {
	Env      string   `envconfig:"ENV"       default:"development"`
	LogLevel string   `envconfig:"LOG_LEVEL"`
	Port     string   `envconfig:"PORT"      default:"8080"`
	Host     string   `envconfig:"HOST"`
	Shutdown Shutdown `envconfig:"SHUTDOWN"`
}

type Shutdown struct {
	CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"5"`
	GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"10"`
}

type App struct {
	Name        string      `envconfig:"APP_NAME" default:"hotelledger"`
	Timezone    string      `envconfig:"TIMEZONE" default:"UTC"`
	CORS        CORS        `envconfig:"CORS"`
	RateLimiter RateLimiter `envconfig:"RATE_LIMITER"`
	APIKey      string      `envconfig:"API_KEY"`
}

type CORS struct {
	AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
	AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
	AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
	AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
	Enable           bool     `envconfig:"ENABLE"`
	MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
}

type RateLimiter struct {
	Enable        bool `envconfig:"ENABLE"`
	MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"120"`
	WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
}

// Ledger holds the booking ledger rules that vary between deployments.
type Ledger struct {
	// LegacyMonthStartRelease reproduces the old release rule: drop the last date of the
	// released range unless the stay started on the first day of a month.
	LegacyMonthStartRelease bool   `envconfig:"LEGACY_MONTH_START_RELEASE" default:"false"`
	MaxPayments             int    `envconfig:"MAX_PAYMENTS"               default:"3"`
	BookingNoPrefix         string `envconfig:"BOOKING_NO_PREFIX"          default:"FTB"`
}

type Cache struct {
	Redis struct {
		Primary Redis `envconfig:"PRIMARY"`
	} `envconfig:"REDIS"`
	TTL int `envconfig:"TTL" default:"300"`
}

type Redis struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB"`
}

type JWT struct {
	AccessSecret     string `envconfig:"ACCESS_SECRET"`
	RefreshSecret    string `envconfig:"REFRESH_SECRET"`
	AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"15"`
	RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"1440"`
}

type DB struct {
	Postgres Postgres `envconfig:"POSTGRES"`
}

type Postgres struct {
	MaxRetry       int          `envconfig:"MAX_RETRY"       default:"3"`
	RetryWaitTime  int          `envconfig:"RETRY_WAIT_TIME" default:"2"`
	MigrationTable string       `envconfig:"MIGRATION_TABLE"`
	AutoMigrate    bool         `envconfig:"AUTO_MIGRATE"`
	Prefix         string       `envconfig:"PREFIX"`
	Read           PostgresNode `envconfig:"READ"`
	Write          PostgresNode `envconfig:"WRITE"`
}

// PostgresNode is one side of the read/write split.
type PostgresNode struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

type Kafka struct {
	Brokers       []string `envconfig:"BROKERS"`
	ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
	TopicPrefix   string   `envconfig:"TOPIC_PREFIX"`
	Enable        bool     `envconfig:"ENABLE"`
	SASL          struct {
		Username string `envconfig:"USERNAME"`
		Password string `envconfig:"PASSWORD"`
	} `envconfig:"SASL"`
}

type External struct {
	Otel struct {
		Endpoint string `envconfig:"ENDPOINT"`
	} `envconfig:"OTEL"`
	S3 struct {
		APIEndpoint     string `envconfig:"API_ENDPOINT"`
		PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
		AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
		SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		BucketName      string `envconfig:"BUCKET_NAME"`
		Region          string `envconfig:"REGION" default:"auto"`
	} `envconfig:"S3"`
}

var (
	conf     Config
	once     sync.Once
	errStart error
)

// Validate rejects combinations the ledger cannot run with.
func (c *Config) Validate() error {
	if c.Ledger.MaxPayments < 1 {
		return errors.Errorf("LEDGER_MAX_PAYMENTS must be at least 1, got %d", c.Ledger.MaxPayments)
	}

	if c.Ledger.BookingNoPrefix == "" {
		return errors.New("LEDGER_BOOKING_NO_PREFIX must not be empty")
	}

	if c.App.RateLimiter.Enable && (c.App.RateLimiter.MaxRequests < 1 || c.App.RateLimiter.WindowSeconds < 1) {
		return errors.New("rate limiter needs a positive request budget and window")
	}

	if c.Kafka.Enable && len(c.Kafka.Brokers) == 0 {
		return errors.New("KAFKA_BROKERS is required when kafka is enabled")
	}

	return nil
}

// Load reads the environment into a fresh Config without touching the process-wide one.
func Load() (*Config, error) {
	var c Config

	if err := envconfig.Process(envPrefix, &c); err != nil {
		return nil, errors.Wrap(err, "processing environment")
	}

	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating environment")
	}

	return &c, nil
}

func Init() error {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Warn().Err(err).Msg("No .env file found, reading the process environment only")
		}

		loaded, err := Load()
		if err != nil {
			errStart = err
			return
		}

		conf = *loaded

		log.Info().Str("env", conf.Server.Env).Msg("Configuration loaded")
	})

	return errStart
}

func Get() *Config {
	if err := Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize configuration")
	}

	return &conf
}
