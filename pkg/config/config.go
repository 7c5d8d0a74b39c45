package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names, kept in one place so tests and ops docs agree.
const (
	EnvAppEnv         = "PACKFINDERZ_APP_ENV"
	EnvPort           = "PACKFINDERZ_APP_PORT"
	EnvRedisURL       = "PACKFINDERZ_REDIS_URL"
	EnvBackendBaseURL = "PACKFINDERZ_BACKEND_BASE_URL"
	EnvSearchDebounce = "PACKFINDERZ_SEARCH_DEBOUNCE"
	EnvRecencySlot    = "PACKFINDERZ_SEARCH_RECENCY_SLOT"
	EnvCartTopic      = "PACKFINDERZ_CART_TOPIC"
)

type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Backend BackendConfig
	Search  SearchConfig
	Cart    CartConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PACKFINDERZ_APP_ENV" required:"true"`
	Port         string `envconfig:"PACKFINDERZ_APP_PORT" default:"8090"`
	LogLevel     string `envconfig:"PACKFINDERZ_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PACKFINDERZ_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// RedisConfig drives the durable storage slot for recent searches. Redis is
// optional for the storefront shell: when URL and Address are both empty the
// shell falls back to an in-memory slot and recency does not survive restarts.
type RedisConfig struct {
	URL          string        `envconfig:"PACKFINDERZ_REDIS_URL"`
	Address      string        `envconfig:"PACKFINDERZ_REDIS_ADDR"`
	Password     string        `envconfig:"PACKFINDERZ_REDIS_PASSWORD"`
	DB           int           `envconfig:"PACKFINDERZ_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PACKFINDERZ_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PACKFINDERZ_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PACKFINDERZ_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PACKFINDERZ_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PACKFINDERZ_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured reports whether any Redis endpoint was provided.
func (r RedisConfig) Configured() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

// BackendConfig points at the marketplace API this client consumes.
type BackendConfig struct {
	BaseURL     string        `envconfig:"PACKFINDERZ_BACKEND_BASE_URL" required:"true"`
	Timeout     time.Duration `envconfig:"PACKFINDERZ_BACKEND_TIMEOUT" default:"10s"`
	RequireAuth bool          `envconfig:"PACKFINDERZ_BACKEND_REQUIRE_AUTH" default:"true"`
}

func (b BackendConfig) validate() error {
	parsed, err := url.Parse(strings.TrimSpace(b.BaseURL))
	if err != nil {
		return fmt.Errorf("parsing backend base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("backend base url %q must be absolute", b.BaseURL)
	}
	return nil
}

// SearchConfig tunes the suggestion surface and recency list.
type SearchConfig struct {
	DebounceInterval time.Duration `envconfig:"PACKFINDERZ_SEARCH_DEBOUNCE" default:"250ms"`
	RecencyCap       int           `envconfig:"PACKFINDERZ_SEARCH_RECENCY_CAP" default:"5"`
	RecencySlotKey   string        `envconfig:"PACKFINDERZ_SEARCH_RECENCY_SLOT" default:"recentSearches"`
}

// CartConfig tunes the cart mutation controls and their badge listeners.
type CartConfig struct {
	ConfirmRevert time.Duration `envconfig:"PACKFINDERZ_CART_CONFIRM_REVERT" default:"2s"`
	Topic         string        `envconfig:"PACKFINDERZ_CART_TOPIC" default:"cart:updated"`
	WishlistTopic string        `envconfig:"PACKFINDERZ_WISHLIST_TOPIC" default:"wishlist:updated"`
}
