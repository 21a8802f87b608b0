package app

import (
	"flag"
	"fmt"
	"strconv"
	"time"
)

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	DisplayVersion   bool
	DB               DBConfig
	Redis            RedisConfig
	Stripe           StripeConfig
	Seating          SeatingConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type StripeConfig struct {
	SecretKey     string
	Currency      string
	PaymentMethod string
}

type SeatingConfig struct {
	// Capacity is the number of seats that can be reserved in total. Zero means unbounded.
	Capacity int
}

// parseConfig reads the configuration from command line flags. Every flag falls back
// to an environment variable, then to a built-in default.
func parseConfig(args []string, getenv func(string) string) (Config, error) {
	var cfg Config

	env := envLookup{getenv: getenv}
	fs := flag.NewFlagSet("cinema-tickets", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "port", env.getInt("PORT", 3000), "server port")
	fs.StringVar(&cfg.Env, "env", env.getString("ENV", "dev"), "Environment (dev|staging|prod)")
	fs.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", env.getString("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")

	fs.StringVar(&cfg.DB.DSN, "db-dsn", env.getString("DB_DSN", ""), "PostgreSQL DSN")
	fs.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", env.getInt("DB_MAX_OPEN_CONNS", 25), "PostgreSQL max open connections")
	fs.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", env.getDuration("DB_MAX_IDLE_TIME", 15*time.Minute), "PostgreSQL max idle time for connections")

	fs.StringVar(&cfg.Redis.URL, "redis-url", env.getString("REDIS_URL", ""), "Redis URL")
	fs.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", env.getInt("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	fs.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", env.getInt("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	fs.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", env.getDuration("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")

	fs.StringVar(&cfg.Stripe.SecretKey, "stripe-key", env.getString("STRIPE_SECRET_KEY", ""), "Stripe secret key, payments are not charged when empty")
	fs.StringVar(&cfg.Stripe.Currency, "stripe-currency", env.getString("STRIPE_CURRENCY", "gbp"), "Currency of ticket prices")
	fs.StringVar(&cfg.Stripe.PaymentMethod, "stripe-payment-method", env.getString("STRIPE_PAYMENT_METHOD", "pm_card_visa"), "Stripe payment method used for charges")

	fs.IntVar(&cfg.Seating.Capacity, "seat-capacity", env.getInt("SEAT_CAPACITY", 250), "Total number of seats that can be reserved, 0 for unbounded")

	fs.BoolVar(&cfg.DisplayVersion, "version", false, "Display version and exit")

	if env.err != nil {
		return Config{}, env.err
	}

	err := fs.Parse(args)
	if err != nil {
		return Config{}, err
	}

	if cfg.Seating.Capacity < 0 {
		return Config{}, fmt.Errorf("seat capacity must not be negative: %d", cfg.Seating.Capacity)
	}

	return cfg, nil
}

// envLookup reads typed defaults from the environment and keeps the first parse error.
type envLookup struct {
	getenv func(string) string
	err    error
}

func (e *envLookup) getString(key, fallback string) string {
	if v := e.getenv(key); v != "" {
		return v
	}

	return fallback
}

func (e *envLookup) getInt(key string, fallback int) int {
	v := e.getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		e.setErr(fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}

	return n
}

func (e *envLookup) getDuration(key string, fallback time.Duration) time.Duration {
	v := e.getenv(key)
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		e.setErr(fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}

	return d
}

func (e *envLookup) setErr(err error) {
	if e.err == nil {
		e.err = err
	}
}
