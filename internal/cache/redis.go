package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"folio/internal/domain"
	"folio/internal/domain/models"
)

// RedisCache implements VersionCache on Redis, for deployments where several
// API processes serve the same sessions and should share one history cache.
//
// Two keys per document: the serialized list and a generation counter. The
// read-through SET runs inside an optimistic WATCH transaction on the
// generation key, so an invalidation that lands during the store fetch makes
// the SET a no-op instead of resurrecting stale history.
type RedisCache struct {
	client *redis.Client
	lister VersionLister
	prefix string
}

var _ VersionCache = (*RedisCache)(nil)

// NewRedisCache connects to Redis and returns a version cache over the store
func NewRedisCache(redisURL string, lister VersionLister) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisCacheWithClient(client, lister), nil
}

// NewRedisCacheWithClient creates a cache from an existing Redis client
func NewRedisCacheWithClient(client *redis.Client, lister VersionLister) *RedisCache {
	return &RedisCache{
		client: client,
		lister: lister,
		prefix: "versions:",
	}
}

func (c *RedisCache) listKey(documentID string) string {
	return c.prefix + documentID
}

func (c *RedisCache) genKey(documentID string) string {
	return c.prefix + "gen:" + documentID
}

// GetVersions returns the cached list or reads through to the store
func (c *RedisCache) GetVersions(ctx context.Context, documentID string) ([]models.DocumentVersion, error) {
	listKey := c.listKey(documentID)
	genKey := c.genKey(documentID)

	cached, err := c.client.Get(ctx, listKey).Result()
	if err == nil {
		var versions []models.DocumentVersion
		if err := json.Unmarshal([]byte(cached), &versions); err != nil {
			return nil, fmt.Errorf("unmarshal cached versions: %w", err)
		}
		return versions, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: read version cache: %v", domain.ErrTransport, err)
	}

	observedGen, err := c.client.Get(ctx, genKey).Result()
	if errors.Is(err, redis.Nil) {
		observedGen = "0"
	} else if err != nil {
		return nil, fmt.Errorf("%w: read cache generation: %v", domain.ErrTransport, err)
	}

	versions, err := c.lister.ListVersions(ctx, documentID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(versions)
	if err != nil {
		return nil, fmt.Errorf("marshal versions: %w", err)
	}

	// Store only if no invalidation bumped the generation since we looked.
	// TxFailedErr means it did; the fetched data is still correct to return,
	// it just must not be cached.
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		currentGen, err := tx.Get(ctx, genKey).Result()
		if errors.Is(err, redis.Nil) {
			currentGen = "0"
		} else if err != nil {
			return err
		}
		if currentGen != observedGen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, listKey, payload, 0)
			return nil
		})
		return err
	}, genKey)
	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		return nil, fmt.Errorf("%w: populate version cache: %v", domain.ErrTransport, err)
	}

	return versions, nil
}

// InvalidateVersions drops the entry and bumps the generation counter
func (c *RedisCache) InvalidateVersions(ctx context.Context, documentID string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, c.listKey(documentID))
		pipe.Incr(ctx, c.genKey(documentID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: invalidate version cache: %v", domain.ErrTransport, err)
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping checks if Redis is reachable
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
