package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Config struct {
	Port            int    `env:"PORT"`
	LogLevel        string `env:"LOG_LEVEL"`
	LokiURL         string `env:"LOKI_URL"`
	RedisAddr       string `env:"REDIS_ADDR"`
	KafkaBrokers    string `env:"KAFKA_BROKERS"`
	KafkaTopic      string `env:"KAFKA_TOPIC"`
	MongoURI        string `env:"MONGO_URI"`
	MongoDatabase   string `env:"MONGO_DATABASE"`
	MongoCollection string `env:"MONGO_COLLECTION"`
	SeedData        bool   `env:"SEED_DATA"`
}

func Default() Config {
	return Config{
		Port:            3131,
		LogLevel:        "info",
		KafkaTopic:      "bucket-list-events",
		MongoDatabase:   "bucketlist",
		MongoCollection: "events",
		SeedData:        true,
	}
}

// Load reads an optional .env file, then lets environment variables override
// the defaults. Variables already present in the environment win over .env.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	cfg := Default()
	// StrictDecode rejects unparsable values and reports ErrInvalidTarget when no
	// variable is set at all, which just leaves the defaults.
	if err := envdecode.StrictDecode(&cfg); err != nil && !errors.Is(err, envdecode.ErrInvalidTarget) {
		return Config{}, fmt.Errorf("decode env: %w", err)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c Config) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
