package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed login attempts per email in redis. Keys
// expire on their own, so no sweep job is needed.
type LoginThrottle struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewLoginThrottle(client *redis.Client, limit int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{client: client, limit: limit, window: window}
}

func (t *LoginThrottle) key(email string) string {
	return fmt.Sprintf("login:fail:%s", email)
}

// Allow reports whether another attempt is permitted. Fails open when
// redis is unreachable: losing throttling beats locking everyone out.
func (t *LoginThrottle) Allow(ctx context.Context, email string) bool {
	if t == nil || t.client == nil {
		return true
	}
	count, err := t.client.Get(ctx, t.key(email)).Int()
	if err != nil {
		return true
	}
	return count < t.limit
}

func (t *LoginThrottle) Fail(ctx context.Context, email string) error {
	if t == nil || t.client == nil {
		return nil
	}
	key := t.key(email)
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		return t.client.Expire(ctx, key, t.window).Err()
	}
	return nil
}

func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	if t == nil || t.client == nil {
		return nil
	}
	return t.client.Del(ctx, t.key(email)).Err()
}
