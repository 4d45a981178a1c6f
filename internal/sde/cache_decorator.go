package sde

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachingStore decorates a Store with a gzip+JSON Redis front, the
// same compress/decompress shape the teacher uses for market orders,
// applied here to static type/attribute/effect lookups instead.
type CachingStore struct {
	next  Store
	redis *redis.Client
	ttl   time.Duration
}

// NewCachingStore wraps next with a Redis cache. Entries expire after
// ttl; static data rarely changes, so an hour is a reasonable default
// when ttl is zero.
func NewCachingStore(next Store, redisClient *redis.Client, ttl time.Duration) *CachingStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachingStore{next: next, redis: redisClient, ttl: ttl}
}

func (c *CachingStore) ItemType(ctx context.Context, typeID int64) (*ItemType, error) {
	key := fmt.Sprintf("sde:type:%d", typeID)
	var it ItemType
	if ok := c.getCached(ctx, key, &it); ok {
		return &it, nil
	}
	result, err := c.next.ItemType(ctx, typeID)
	if err != nil {
		return nil, err
	}
	c.setCached(ctx, key, result)
	return result, nil
}

func (c *CachingStore) Attribute(ctx context.Context, attrID int64) (*AttributeMeta, error) {
	key := fmt.Sprintf("sde:attr:%d", attrID)
	var meta AttributeMeta
	if ok := c.getCached(ctx, key, &meta); ok {
		return &meta, nil
	}
	result, err := c.next.Attribute(ctx, attrID)
	if err != nil {
		return nil, err
	}
	c.setCached(ctx, key, result)
	return result, nil
}

func (c *CachingStore) Effect(ctx context.Context, effectID int64) (*Effect, error) {
	key := fmt.Sprintf("sde:effect:%d", effectID)
	var eff Effect
	if ok := c.getCached(ctx, key, &eff); ok {
		return &eff, nil
	}
	result, err := c.next.Effect(ctx, effectID)
	if err != nil {
		return nil, err
	}
	c.setCached(ctx, key, result)
	return result, nil
}

// getCached reports whether key was present and decodes it into dst.
// Any cache-layer failure (miss, bad gzip, bad JSON) is treated as a
// miss rather than an error — the caller falls through to next.
func (c *CachingStore) getCached(ctx context.Context, key string, dst interface{}) bool {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	decompressed, err := decompress(data)
	if err != nil {
		return false
	}
	return json.Unmarshal(decompressed, dst) == nil
}

func (c *CachingStore) setCached(ctx context.Context, key string, v interface{}) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return
	}
	compressed, err := compress(jsonData)
	if err != nil {
		return
	}
	c.redis.Set(ctx, key, compressed, c.ttl)
}

func compress(jsonData []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(jsonData); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gr.Close()
	return io.ReadAll(gr)
}
