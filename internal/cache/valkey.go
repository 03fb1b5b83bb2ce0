package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"tourdesk/internal/catalog"
	"tourdesk/internal/models"
)

const catalogKey = "tourdesk:catalog:v1"

type Config struct {
	Enabled  bool
	Addr     string
	Password string
	TTL      time.Duration
}

type ValkeyClient struct {
	client *redis.Client
	ttl    time.Duration
}

func NewValkeyClient(cfg Config) (*ValkeyClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	slog.Info("Connected to Valkey", "addr", cfg.Addr)
	return newValkeyClient(rdb, cfg.TTL), nil
}

func newValkeyClient(rdb *redis.Client, ttl time.Duration) *ValkeyClient {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ValkeyClient{client: rdb, ttl: ttl}
}

// GetCatalog returns (nil, nil) on a cache miss
func (v *ValkeyClient) GetCatalog(ctx context.Context) ([]models.Region, error) {
	raw, err := v.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}

	var regions []models.Region
	if err := json.Unmarshal(raw, &regions); err != nil {
		return nil, fmt.Errorf("invalid catalog in cache: %w", err)
	}
	return regions, nil
}

func (v *ValkeyClient) SetCatalog(ctx context.Context, regions []models.Region) error {
	raw, err := json.Marshal(regions)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	return v.client.Set(ctx, catalogKey, raw, v.ttl).Err()
}

// InvalidateCatalog drops the cached tree, e.g. after seeding
func (v *ValkeyClient) InvalidateCatalog(ctx context.Context) error {
	return v.client.Del(ctx, catalogKey).Err()
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}

// CachedSource reads the catalog through Valkey. Cache failures are logged
// and the underlying source answers instead.
type CachedSource struct {
	next  catalog.Source
	cache *ValkeyClient
}

func NewCachedSource(next catalog.Source, cache *ValkeyClient) *CachedSource {
	return &CachedSource{next: next, cache: cache}
}

func (s *CachedSource) Regions(ctx context.Context) ([]models.Region, error) {
	regions, err := s.cache.GetCatalog(ctx)
	if err != nil {
		slog.Warn("Catalog cache read failed", "error", err)
	}
	if regions != nil {
		return regions, nil
	}

	regions, err = s.next.Regions(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetCatalog(ctx, regions); err != nil {
		slog.Warn("Catalog cache write failed", "error", err)
	}
	return regions, nil
}
