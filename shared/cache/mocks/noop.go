package mocks

import (
	"context"

	"taskpad/shared/cache"
)

type missCache struct{}

// Save implements cache.RedisCache.
func (missCache) Save(_ context.Context, _ string, _ any, _ int) error {
	return nil
}

// Get implements cache.RedisCache. Every lookup is a miss.
func (missCache) Get(_ context.Context, _ string, _ any) error {
	return cache.Nil
}

// Delete implements cache.RedisCache.
func (missCache) Delete(_ context.Context, _ string) error {
	return nil
}

// Clear implements cache.RedisCache.
func (missCache) Clear(_ context.Context, _ string) error {
	return nil
}

// NewMissCache returns a cache that never hits and discards writes. Services
// invalidate caches from detached goroutines, so tests use this instead of a
// gomock to avoid racing the controller shutdown.
func NewMissCache() cache.RedisCache {
	return missCache{}
}
