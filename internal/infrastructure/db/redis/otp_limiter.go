package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cooldownPrefix = "otp-cooldown:"

// OTPLimiter throttles one-time-code requests per email.
// Key format: otp-cooldown:<email>, expiring after the cooldown period.
type OTPLimiter struct {
	client   *redis.Client
	cooldown time.Duration
}

func NewOTPLimiter(client *redis.Client, cooldown time.Duration) *OTPLimiter {
	return &OTPLimiter{client: client, cooldown: cooldown}
}

// Allow reports whether a code may be sent to email now. The first call in a
// cooldown window wins; subsequent calls are throttled until the key expires.
func (l *OTPLimiter) Allow(ctx context.Context, email string) (bool, error) {
	ok, err := l.client.SetNX(ctx, cooldownPrefix+email, "1", l.cooldown).Result()
	if err != nil {
		return false, fmt.Errorf("otp cooldown: %w", err)
	}
	return ok, nil
}
