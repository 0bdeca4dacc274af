// README: Sequential booking numbers via a Redis counter.
package booking

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const counterKey = "bookings:number"

// Counter hands out monotonically increasing booking numbers. Redis INCR is
// atomic, so concurrent bookings never share a number.
type Counter struct {
	redis *redis.Client
}

func NewCounter(r *redis.Client) *Counter {
	return &Counter{redis: r}
}

func (c *Counter) Next(ctx context.Context) (int64, error) {
	return c.redis.Incr(ctx, counterKey).Result()
}
