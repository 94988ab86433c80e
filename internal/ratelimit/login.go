package ratelimit

import (
	"context"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/tavolo/internal/config"
	"github.com/smallbiznis/tavolo/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const keyLogin = "login:%s"

// LoginLimiter throttles credential attempts per email. It is a nil
// no-op when no Redis address is configured, single-node installs run
// without Redis.
type LoginLimiter struct {
	bucket  *TokenBucket
	rate    float64
	burst   int
	log     *zap.Logger
	metrics *metrics.Metrics
}

type loginLimiterParams struct {
	fx.In

	Cfg     config.Config
	Log     *zap.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

func NewLoginLimiter(p loginLimiterParams) *LoginLimiter {
	addr := strings.TrimSpace(p.Cfg.RedisAddr)
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(p.Cfg.RedisPassword),
	})

	rate := p.Cfg.LoginRate
	if rate <= 0 {
		rate = 0.5
	}
	burst := p.Cfg.LoginBurst
	if burst <= 0 {
		burst = 5
	}

	return &LoginLimiter{
		bucket:  NewTokenBucket(client),
		rate:    rate,
		burst:   burst,
		log:     p.Log.Named("ratelimit.login"),
		metrics: p.Metrics,
	}
}

// Allow fails open: a Redis outage never locks staff out of the POS.
func (l *LoginLimiter) Allow(ctx context.Context, email string) bool {
	if l == nil || l.bucket == nil {
		return true
	}

	key := fmt.Sprintf(keyLogin, strings.ToLower(strings.TrimSpace(email)))
	allowed, err := l.bucket.Allow(ctx, key, l.rate, l.burst)
	if err != nil {
		l.log.Warn("login rate limit check failed", zap.Error(err))
		return true
	}
	if !allowed {
		l.metrics.RecordRateLimitDenied(ctx, "/auth/login")
	}
	return allowed
}
