package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

const denylistPrefix = "auth:revoked:"

// Denylist stores revoked session token ids until the token would expire.
type Denylist struct {
	rdb    *goredis.Client
	prefix string
}

func NewDenylist(c *Client) *Denylist {
	d := &Denylist{prefix: denylistPrefix}
	if c != nil {
		d.rdb = c.rdb
	}
	return d
}

func (d *Denylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	jti = strings.TrimSpace(jti)
	if jti == "" {
		return domain.ErrMissingField("jti")
	}
	if d.rdb == nil {
		return domain.ErrRedisUnavailable(errors.New("redis not configured"))
	}
	// already expired tokens need no entry
	if ttl <= 0 {
		return nil
	}
	if err := d.rdb.Set(ctx, d.prefix+jti, "1", ttl).Err(); err != nil {
		return domain.ErrRedisUnavailable(err)
	}
	return nil
}

// IsRevoked fails closed: a Redis error is reported, never treated as "not revoked".
func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	if d.rdb == nil {
		return false, domain.ErrRedisUnavailable(errors.New("redis not configured"))
	}
	n, err := d.rdb.Exists(ctx, d.prefix+jti).Result()
	if err != nil {
		return false, domain.ErrRedisUnavailable(err)
	}
	return n > 0, nil
}
