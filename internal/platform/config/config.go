package config

import (
	"os"
	"strings"
	"time"
)

// Config captures process-level configuration. Backends are optional: an empty
// PostgresURL selects the in-memory profile store, an empty RedisURL disables
// the Redis snapshot cache, and empty KafkaBrokers keeps the activity trail
// store-only.
type Config struct {
	Addr         string
	PostgresURL  string
	RedisURL     string
	KafkaBrokers []string
	KafkaTopic   string
	SnapshotTTL  time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:        envOr("NOESIS_ADDR", ":8080"),
		PostgresURL: os.Getenv("NOESIS_POSTGRES_URL"),
		RedisURL:    os.Getenv("NOESIS_REDIS_URL"),
		KafkaTopic:  envOr("NOESIS_KAFKA_TOPIC", "noesis.sync-activity"),
		SnapshotTTL: 30 * time.Second,
	}

	if brokers := os.Getenv("NOESIS_KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if ttl := os.Getenv("NOESIS_SNAPSHOT_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil && d > 0 {
			cfg.SnapshotTTL = d
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
