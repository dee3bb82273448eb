package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/singhit/internal/model"
	"github.com/mcoot/singhit/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveState(ctx context.Context, state *model.GameState) error {
	data, err := storage.Encode(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, stateKey(s.cfg.Key), data, s.cfg.TTL).Err()
}

func (s *Storage) LoadState(ctx context.Context) (*model.GameState, error) {
	data, err := s.client.Get(ctx, stateKey(s.cfg.Key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrStateNotFound
		}
		return nil, err
	}
	return storage.Decode(data)
}

func (s *Storage) DeleteState(ctx context.Context) error {
	return s.client.Del(ctx, stateKey(s.cfg.Key)).Err()
}
