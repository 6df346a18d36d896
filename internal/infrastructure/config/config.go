package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	AppName  string `env:"APP_NAME, default=travio-gateway"`

	Travio TravioConfig
	Redis  RedisConfig
	Mongo  MongoConfig
}

// TravioConfig holds the credentials and defaults for the upstream Travio API.
type TravioConfig struct {
	ID       int    `env:"TRAVIO_ID"`
	Key      string `env:"TRAVIO_KEY"`
	BaseURL  string `env:"TRAVIO_BASE_URL,  default=https://api.travio.it"`
	Language string `env:"TRAVIO_LANGUAGE,  default=en"`
	UseMock  bool   `env:"USE_MOCK_DATA,    default=false"`
}

// RedisConfig configures the optional token store. When TokenCache is false
// the gateway keeps tokens in process memory only.
type RedisConfig struct {
	Addr       string `env:"REDIS_ADDR, default=localhost:6379"`
	DB         int    `env:"REDIS_DB,   default=0"`
	TokenCache bool   `env:"TOKEN_CACHE_ENABLED, default=false"`
}

// MongoConfig is used by the contact-export tool, not by the server.
type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=travio_exports"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
