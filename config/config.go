// Package config reads runtime settings from the environment, an optional
// .env file and CLI overrides.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables.
const (
	EnvData          = "CINELENS_DATA"
	EnvHTTPAddr      = "HTTP_ADDR"
	EnvCache         = "CINELENS_CACHE"
	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"
	EnvTopN          = "CINELENS_TOP_N"
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Defaults.
const (
	DefaultHTTPAddr  = ":8080"
	DefaultRedisAddr = "localhost:6379"
	DefaultTopN      = 10
)

var (
	// ErrMissingData means no dataset path was configured.
	ErrMissingData = errors.New("no dataset configured")
	// ErrInvalid wraps every malformed setting.
	ErrInvalid = errors.New("invalid configuration")
)

// Config is the effective configuration.
type Config struct {
	DataPath string
	HTTPAddr string

	Cache         string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	TopN int
}

// Overrides carries CLI values plus whether each was set explicitly,
// so an explicit flag wins even when it equals the zero value.
type Overrides struct {
	DataPath string
	HTTPAddr string
	Cache    string
	TopN     int

	DataPathSet bool
	HTTPAddrSet bool
	CacheSet    bool
	TopNSet     bool
}

// Load reads the .env files (missing ones are ignored), then the
// environment. With no files given, ".env" in the working directory is tried.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalid, f, err)
			}
			log.Printf("🔧 Cinelens: %s not found, using environment only", f)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables.
func FromEnv() (Config, error) {
	cfg := Config{
		DataPath:      strings.TrimSpace(os.Getenv(EnvData)),
		HTTPAddr:      getenv(EnvHTTPAddr, DefaultHTTPAddr),
		Cache:         strings.ToLower(getenv(EnvCache, CacheMemory)),
		RedisAddr:     getenv(EnvRedisAddr, DefaultRedisAddr),
		RedisPassword: os.Getenv(EnvRedisPassword),
	}

	var err error
	if cfg.RedisDB, err = getint(EnvRedisDB, 0); err != nil {
		return Config{}, err
	}
	if cfg.TopN, err = getint(EnvTopN, DefaultTopN); err != nil {
		return Config{}, err
	}

	return cfg, cfg.check()
}

// Merge applies explicitly set CLI overrides.
func (c Config) Merge(o Overrides) (Config, error) {
	if o.DataPathSet {
		c.DataPath = strings.TrimSpace(o.DataPath)
	}
	if o.HTTPAddrSet {
		c.HTTPAddr = o.HTTPAddr
	}
	if o.CacheSet {
		c.Cache = strings.ToLower(strings.TrimSpace(o.Cache))
	}
	if o.TopNSet {
		c.TopN = o.TopN
	}
	return c, c.check()
}

// RequireData reports ErrMissingData when no dataset path is set.
func (c Config) RequireData() error {
	if c.DataPath == "" {
		return fmt.Errorf("%w: set %s or pass --file", ErrMissingData, EnvData)
	}
	return nil
}

func (c Config) check() error {
	switch c.Cache {
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("%w: cache %q: want %s or %s", ErrInvalid, c.Cache, CacheMemory, CacheRedis)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("%w: top N must be positive, got %d", ErrInvalid, c.TopN)
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("%w: redis db must be non-negative, got %d", ErrInvalid, c.RedisDB)
	}
	return nil
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, k, v)
	}
	return i, nil
}
