package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// GetJSON decodes a cached JSON value into v.
// It returns ErrCacheMiss when the key is absent or the entry is corrupt.
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = c.Delete(ctx, key)
		return fmt.Errorf("%w: corrupt entry: %v", ErrCacheMiss, err)
	}
	return nil
}

// SetJSON stores v as JSON.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
