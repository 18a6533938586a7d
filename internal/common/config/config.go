package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug       bool   `env:"DEBUG" envDefault:"false"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"charity-lottery-backend"`
	LogJSON     bool   `env:"LOG_JSON" envDefault:"false"`

	Server struct {
		Port            int           `env:"PORT" envDefault:"8080"`
		Origin          string        `env:"ORIGIN" envDefault:"http://localhost:3000"`
		ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
		WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
		ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}

	// Storage driver: "bolt" for a single node, "redis" for shared state
	Storage struct {
		Driver   string `env:"STORAGE_DRIVER" envDefault:"bolt"`
		BoltPath string `env:"BOLT_PATH" envDefault:"lottery.db"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Auth struct {
		// Trust X-Caller without a signature. Local development only.
		AllowUnsigned bool          `env:"AUTH_ALLOW_UNSIGNED" envDefault:"false"`
		MaxSkew       time.Duration `env:"AUTH_MAX_SKEW" envDefault:"5m"`

		// Account allowed to post deposits over HTTP on behalf of payers
		TransportAccount string `env:"TRANSPORT_ACCOUNT" envDefault:""`
	}

	Lottery struct {
		EndAuthority string `env:"LOTTERY_END_AUTHORITY" envDefault:"charity"`
		NoRevealers  string `env:"LOTTERY_NO_REVEALERS" envDefault:"reject"`
	}

	Workers struct {
		PaymentsEnabled bool   `env:"PAYMENT_WORKER_ENABLED" envDefault:"false"`
		PaymentsStream  string `env:"PAYMENTS_STREAM" envDefault:"lottery:payments"`
		ConsumerGroup   string `env:"PAYMENTS_CONSUMER_GROUP" envDefault:"lottery_backend_consumers"`
		ConsumerName    string `env:"PAYMENTS_CONSUMER_NAME" envDefault:"lottery_worker_1"`
		EventsEnabled   bool   `env:"EVENTS_ENABLED" envDefault:"false"`
		EventsStream    string `env:"EVENTS_STREAM" envDefault:"lottery:events"`
	}
}

// Load reads .env (when present) and the environment into Config.
func Load() (*Config, error) {
	// .env is optional; production sets variables directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.MaxSkew <= 0 {
		return fmt.Errorf("invalid AUTH_MAX_SKEW %s: must be positive", c.Auth.MaxSkew)
	}
	switch c.Storage.Driver {
	case "bolt", "redis":
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: want bolt or redis", c.Storage.Driver)
	}
	switch c.Lottery.EndAuthority {
	case "charity", "anyone":
	default:
		return fmt.Errorf("invalid LOTTERY_END_AUTHORITY %q: want charity or anyone", c.Lottery.EndAuthority)
	}
	switch c.Lottery.NoRevealers {
	case "reject", "refund":
	default:
		return fmt.Errorf("invalid LOTTERY_NO_REVEALERS %q: want reject or refund", c.Lottery.NoRevealers)
	}
	return nil
}

// RedisAddr returns host:port for go-redis
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// NeedsRedis reports whether any enabled component talks to redis
func (c *Config) NeedsRedis() bool {
	return c.Storage.Driver == "redis" || c.Workers.PaymentsEnabled || c.Workers.EventsEnabled
}
