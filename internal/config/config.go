package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Server struct {
	Port              string `json:"port" env:"PORT"`
	RequestTimeoutSec int    `json:"request_timeout_sec" env:"REQUEST_TIMEOUT_SEC"`
	// MaxSymbols bounds a single batch quote request. Batches are fetched
	// sequentially with BatchDelaySec between live calls, so keep it small.
	MaxSymbols int `json:"max_symbols" env:"MAX_SYMBOLS"`
}

type AlphaVantage struct {
	// APIKey switches the provider into live mode. Empty means static-only.
	APIKey        string `json:"api_key" env:"ALPHAVANTAGE_API_KEY"`
	Endpoint      string `json:"endpoint" env:"ALPHAVANTAGE_ENDPOINT"`
	TimeoutSec    int    `json:"timeout_sec" env:"ALPHAVANTAGE_TIMEOUT_SEC"`
	BatchDelaySec int    `json:"batch_delay_sec" env:"ALPHAVANTAGE_BATCH_DELAY_SEC"`
	SearchLimit   int    `json:"search_limit" env:"ALPHAVANTAGE_SEARCH_LIMIT"`
}

type Cache struct {
	// Backend is one of memory, sqlite, redis.
	Backend       string `json:"backend" env:"CACHE_BACKEND"`
	ExpirySec     int    `json:"expiry_sec" env:"CACHE_EXPIRY_SEC"`
	SQLitePath    string `json:"sqlite_path" env:"CACHE_SQLITE_PATH"`
	RedisAddr     string `json:"redis_addr" env:"CACHE_REDIS_ADDR"`
	RedisPassword string `json:"redis_password" env:"CACHE_REDIS_PASSWORD"`
	RedisDB       int    `json:"redis_db" env:"CACHE_REDIS_DB"`
	RedisPrefix   string `json:"redis_prefix" env:"CACHE_REDIS_PREFIX"`
}

type Store struct {
	// Driver is one of memory, mysql, postgres.
	Driver string `json:"driver" env:"STORE_DRIVER"`
	DSN    string `json:"dsn" env:"STORE_DSN"`
}

type Log struct {
	Level      string `json:"level" env:"LOG_LEVEL"`
	Format     string `json:"format" env:"LOG_FORMAT"`
	File       string `json:"file" env:"LOG_FILE"`
	MaxSizeMB  int    `json:"max_size_mb" env:"LOG_MAX_SIZE_MB"`
	MaxBackups int    `json:"max_backups" env:"LOG_MAX_BACKUPS"`
	MaxAgeDays int    `json:"max_age_days" env:"LOG_MAX_AGE_DAYS"`
	Compress   bool   `json:"compress" env:"LOG_COMPRESS"`
}

type Config struct {
	Server       Server       `json:"server"`
	AlphaVantage AlphaVantage `json:"alphavantage"`
	Cache        Cache        `json:"cache"`
	Store        Store        `json:"store"`
	Log          Log          `json:"log"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 10, MaxSymbols: 5},
		AlphaVantage: AlphaVantage{
			Endpoint:      "https://www.alphavantage.co/query",
			TimeoutSec:    10,
			BatchDelaySec: 12, // free tier allows 5 calls per minute
			SearchLimit:   10,
		},
		Cache: Cache{
			Backend:     "memory",
			ExpirySec:   300,
			SQLitePath:  "data/quotes.db",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "quotes:",
		},
		Store: Store{Driver: "memory"},
		Log: Log{
			Level:      "info",
			Format:     "json",
			MaxSizeMB:  100,
			MaxBackups: 10,
			MaxAgeDays: 30,
			Compress:   true,
		},
	}
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. Environment variables override any field that has an
// env tag.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Cache.Backend) {
	case "memory", "sqlite", "redis":
	default:
		errs = append(errs, fmt.Errorf("cache.backend: unsupported %q", c.Cache.Backend))
	}
	if c.Cache.ExpirySec < 0 {
		errs = append(errs, fmt.Errorf("cache.expiry_sec: must be >= 0"))
	}
	switch strings.ToLower(c.Store.Driver) {
	case "memory":
	case "mysql", "postgres":
		if c.Store.DSN == "" {
			errs = append(errs, fmt.Errorf("store.dsn: required for driver %q", c.Store.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver: unsupported %q", c.Store.Driver))
	}
	if c.AlphaVantage.BatchDelaySec < 0 {
		errs = append(errs, fmt.Errorf("alphavantage.batch_delay_sec: must be >= 0"))
	}
	if c.Server.MaxSymbols <= 0 {
		errs = append(errs, fmt.Errorf("server.max_symbols: must be > 0"))
	}
	return errors.Join(errs...)
}

func (c Cache) Expiry() time.Duration { return time.Duration(c.ExpirySec) * time.Second }

func (a AlphaVantage) BatchDelay() time.Duration { return time.Duration(a.BatchDelaySec) * time.Second }

func (a AlphaVantage) Timeout() time.Duration { return time.Duration(a.TimeoutSec) * time.Second }

// Live reports whether a live upstream is configured.
func (a AlphaVantage) Live() bool { return strings.TrimSpace(a.APIKey) != "" }

// SplitCSV splits a comma separated list, dropping empty entries.
func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
