package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// GetOrLoad đọc key từ cache, miss thì gọi load và ghi lại kết quả.
// Lỗi cache chỉ được log, luôn fallback về load. Kết quả not-found không được cache.
func GetOrLoad[T any](
	ctx context.Context,
	c Cache,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (T, bool, error),
) (T, bool, error) {
	var cached T
	hit, err := c.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[Cache] GET failed, reading from database")
	}
	if hit && err == nil {
		return cached, true, nil
	}

	value, found, err := load(ctx)
	if err != nil || !found {
		return value, found, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[Cache] SET failed")
	}
	return value, true, nil
}

// Invalidate xóa các pattern; lỗi chỉ được log vì TTL sẽ dọn dần
func Invalidate(ctx context.Context, c Cache, patterns ...string) {
	for _, p := range patterns {
		if err := c.DeletePattern(ctx, p); err != nil {
			log.Warn().Err(err).Str("pattern", p).Msg("[Cache] Invalidate failed")
		}
	}
}
