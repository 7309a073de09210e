package config

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
)

// Environment variables with defaults
type ServerEnvironment struct {

	// http server settings
	Environment           string        `env:"ENVIRONMENT,default=dev"`
	Host                  string        `env:"HOST,default=0.0.0.0"`
	Port                  int           `env:"PORT,default=8080"`
	LogLevel              string        `env:"LOG_LEVEL,default=debug"`
	ReadTimeout           time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout          time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	IdleTimeout           time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT,default=10s"`
	RateLimitRPS          int32         `env:"RATE_LIMIT_RPS,default=0"`
	RateLimitBurst        int32         `env:"RATE_LIMIT_BURST,default=20"`
	MaxRequestBytes       int64         `env:"MAX_REQUEST_BYTES,default=1048576"`

	// store settings
	StoreType           string        `env:"STORE_TYPE,default=badger"`
	BadgerPath          string        `env:"BADGER_PATH,default=data/badger"`
	MongoURI            string        `env:"MONGO_URI,default=mongodb://localhost:27017"`
	MongoDatabase       string        `env:"MONGO_DATABASE,default=blogapi"`
	StoreConnectTimeout time.Duration `env:"STORE_CONNECT_TIMEOUT,default=10s"`

	// fixtures
	SeedCount int `env:"SEED_COUNT,default=10"`
}

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"prod":    true,
	"staging": true,
}

var validStores = map[string]bool{
	"badger": true,
	"memory": true,
	"mongo":  true,
}

// NewServerConfig loads environment variables and returns a ServerEnvironment struct that contains the values
func NewServerConfig() (*ServerEnvironment, error) {
	var cfg ServerEnvironment

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Addr is the host:port the HTTP server listens on.
func (c *ServerEnvironment) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func validateConfig(cfg *ServerEnvironment) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid ENVIRONMENT: %s", cfg.Environment)
	}
	if !validStores[cfg.StoreType] {
		return fmt.Errorf("invalid STORE_TYPE: %s (use badger, memory or mongo)", cfg.StoreType)
	}
	if cfg.StoreType == "mongo" && cfg.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required when STORE_TYPE=mongo")
	}
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be 0 or greater")
	}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled")
	}
	if cfg.MaxRequestBytes < 1 {
		return fmt.Errorf("MAX_REQUEST_BYTES must be at least 1")
	}
	if cfg.SeedCount < 0 {
		return fmt.Errorf("SEED_COUNT must be 0 or greater")
	}
	return nil
}
