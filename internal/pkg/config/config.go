package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Users  UsersConfig
	Notify NotifyConfig
}

// MongoConfig selects the storage adapter: an empty URI means in-memory storage.
type MongoConfig struct {
	URI        string `env:"MONGO_URI"`
	Database   string `env:"MONGO_DB,         default=users_service"`
	Collection string `env:"MONGO_COLLECTION, default=users"`
}

// RedisConfig configures the change-notification broker. An empty Addr
// disables Redis and change events are logged instead.
type RedisConfig struct {
	Addr          string `env:"REDIS_ADDR"`
	Password      string `env:"REDIS_PASSWORD"`
	DB            int    `env:"REDIS_DB,             default=0"`
	ChannelPrefix string `env:"REDIS_CHANNEL_PREFIX, default=users"`
}

type UsersConfig struct {
	Seed             bool `env:"USERS_SEED,              default=true"`
	StrictValidation bool `env:"USERS_STRICT_VALIDATION, default=false"`
}

type NotifyConfig struct {
	Workers int `env:"NOTIFY_WORKERS, default=4"`
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from the given lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
