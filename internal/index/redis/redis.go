// Package redis implements the index client on Redis 8+ with RediSearch:
// per-namespace FT indexes over hashes, KNN retrieval, and a local lexical
// rerank pass. Text is vectorized through an injected Embedder, so the
// retrieval core itself never touches embeddings.
package redis

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/parcelam/docdex/internal/index"
)

const driverName = "redis"

// Compile-time check: Index implements index.Client.
var _ index.Client = (*Index)(nil)

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Config holds connection parameters for the Redis index.
type Config struct {
	Addrs      []string
	Username   string
	Password   string
	KeyPrefix  string
	Dimensions int
}

// Index implements the semantic index client via rueidis.
type Index struct {
	client rueidis.Client
	embed  Embedder
	prefix string
	dims   int
}

// New creates a Redis index client.
func New(cfg Config, embed Embedder) (*Index, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	if embed == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if cfg.Dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "docdex:"
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DisableCache: true,
		AlwaysRESP2:  true, // FT.SEARCH result parsing expects RESP2 array format
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Index{client: client, embed: embed, prefix: prefix, dims: cfg.Dimensions}, nil
}

// Ping checks connectivity.
func (x *Index) Ping(ctx context.Context) error {
	cmd := x.client.B().Ping().Build()
	if err := x.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (x *Index) Close() {
	x.client.Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (x *Index) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for redis: %w", ctx.Err())
		case <-ticker.C:
			if err := x.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// --- Key and index naming ---

func (x *Index) indexName(namespace string) string {
	return x.prefix + "idx:" + namespace
}

func (x *Index) docPrefix(namespace string) string {
	return x.prefix + "ns:" + namespace + ":doc:"
}

func (x *Index) docKey(namespace, id string) string {
	return x.docPrefix(namespace) + id
}

// docID recovers the record id from a hash key.
func (x *Index) docID(namespace, key string) string {
	return strings.TrimPrefix(key, x.docPrefix(namespace))
}

// --- Low-level helpers ---

func (x *Index) do(ctx context.Context, cmd rueidis.Completed) rueidis.RedisResult {
	return x.client.Do(ctx, cmd)
}

func (x *Index) b() rueidis.Builder {
	return x.client.B()
}

// isRedisErr checks if err is a Redis server error containing substr (case-insensitive).
func isRedisErr(err error, substr string) bool {
	re, ok := rueidis.IsRedisErr(err)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(re.Error()), strings.ToLower(substr))
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
