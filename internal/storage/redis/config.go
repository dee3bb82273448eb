package redis

import (
	"time"

	"github.com/mcoot/singhit/internal/storage"
)

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// Key names the snapshot record
	Key string

	// TTL expires an untouched snapshot; zero keeps it forever
	TTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     4,
		MinIdleConns: 1,
		Key:          storage.DefaultKey,
		TTL:          0,
	}
}
