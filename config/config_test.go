package config_test

import (
	"testing"

	"hotelledger/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Ledger.MaxPayments)
	assert.Equal(t, "FTB", cfg.Ledger.BookingNoPrefix)
	assert.False(t, cfg.Ledger.LegacyMonthStartRelease)
	assert.Equal(t, "UTC", cfg.App.Timezone)
	assert.Equal(t, "disable", cfg.DB.Postgres.Write.SSLMode)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("LEDGER_LEGACY_MONTH_START_RELEASE", "true")
	t.Setenv("LEDGER_BOOKING_NO_PREFIX", "HTL")
	t.Setenv("DB_POSTGRES_WRITE_HOST", "db.internal")
	t.Setenv("KAFKA_ENABLE", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Ledger.LegacyMonthStartRelease)
	assert.Equal(t, "HTL", cfg.Ledger.BookingNoPrefix)
	assert.Equal(t, "db.internal", cfg.DB.Postgres.Write.Host)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		cfg := &config.Config{}
		cfg.Ledger.MaxPayments = 3
		cfg.Ledger.BookingNoPrefix = "FTB"

		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "no payments allowed", mutate: func(c *config.Config) { c.Ledger.MaxPayments = 0 }, wantErr: "LEDGER_MAX_PAYMENTS"},
		{name: "empty prefix", mutate: func(c *config.Config) { c.Ledger.BookingNoPrefix = "" }, wantErr: "LEDGER_BOOKING_NO_PREFIX"},
		{
			name: "limiter without budget",
			mutate: func(c *config.Config) {
				c.App.RateLimiter.Enable = true
				c.App.RateLimiter.WindowSeconds = 60
			},
			wantErr: "rate limiter",
		},
		{name: "kafka without brokers", mutate: func(c *config.Config) { c.Kafka.Enable = true }, wantErr: "KAFKA_BROKERS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
