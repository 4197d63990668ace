// Package redis provides an embedding cache shared through a Redis server.
package redis

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driven"
)

// Ensure EmbeddingCache implements the interface.
var _ driven.EmbeddingCache = (*EmbeddingCache)(nil)

// Default configuration values.
const (
	DefaultAddr      = "localhost:6379"
	DefaultKeyPrefix = "bumpbook:embedding:"
	dialTimeout      = 3 * time.Second
)

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int

	// KeyPrefix namespaces every key (default: bumpbook:embedding:).
	KeyPrefix string

	// TTL expires entries. Zero keeps them forever.
	TTL time.Duration
}

// EmbeddingCache stores vectors as little-endian float32 strings.
type EmbeddingCache struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewEmbeddingCache connects to Redis and pings it.
func NewEmbeddingCache(ctx context.Context, cfg Config) (*EmbeddingCache, error) {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.Addr, err)
	}

	return newEmbeddingCache(client, cfg), nil
}

func newEmbeddingCache(client *goredis.Client, cfg Config) *EmbeddingCache {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &EmbeddingCache{client: client, prefix: prefix, ttl: cfg.TTL}
}

// Get returns the cached vector for key.
func (c *EmbeddingCache) Get(ctx context.Context, key domain.EmbeddingKey) ([]float32, bool, error) {
	data, err := c.client.Get(ctx, c.redisKey(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	if len(data) == 0 || len(data)%4 != 0 {
		return nil, false, nil
	}
	return decodeVector(data), true, nil
}

// Put stores the vector for key, replacing any previous value.
func (c *EmbeddingCache) Put(ctx context.Context, key domain.EmbeddingKey, vector []float32) error {
	if err := c.client.Set(ctx, c.redisKey(key), encodeVector(vector), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close closes the client.
func (c *EmbeddingCache) Close() error {
	return c.client.Close()
}

func (c *EmbeddingCache) redisKey(key domain.EmbeddingKey) string {
	return c.prefix + key.String()
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(data []byte) []float32 {
	v := make([]float32, len(data)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return v
}
