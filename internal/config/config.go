package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var errNoAPIOrigin = errors.New("api origin is not configured")

// ClientConfig is everything the client binary needs to talk to the
// backend and keep its local profile state.
type ClientConfig struct {
	APIOrigin   string
	StoragePath string
	RedisAddr   string
	CacheTTL    time.Duration
}

// Load reads .env (optional), the yaml config (optional) and environment
// overrides, in that order of increasing precedence.
func Load() (*ClientConfig, error) {
	_ = godotenv.Load()

	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &ClientConfig{
		APIOrigin:   viper.GetString("api.origin"),
		StoragePath: viper.GetString("storage.path"),
		RedisAddr:   viper.GetString("redis.addr"),
		CacheTTL:    viper.GetDuration("cache.ttl"),
	}

	if v := os.Getenv("API_ORIGIN"); v != "" {
		cfg.APIOrigin = v
	}
	if v := os.Getenv("STORAGE_PATH"); v != "" {
		cfg.StoragePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}

	if cfg.APIOrigin == "" {
		return nil, errNoAPIOrigin
	}
	if cfg.StoragePath == "" {
		cfg.StoragePath = "techblog.db"
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = time.Hour
	}

	return cfg, nil
}
