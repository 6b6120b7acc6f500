package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter 上游请求限速器(令牌桶)
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter 创建限速器
// qps<=0 表示不限速;桶大小等于QPS,允许短时突发
func NewRateLimiter(qps int) *RateLimiter {
	if qps <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(qps), qps)}
}

// Wait 阻塞直到获得令牌或ctx结束
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}

// Allow 非阻塞地尝试获取令牌
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}

// SetQPS 动态调整QPS
func (r *RateLimiter) SetQPS(qps int) {
	if qps <= 0 {
		r.limiter.SetLimit(rate.Inf)
		r.limiter.SetBurst(1)
		return
	}
	r.limiter.SetLimit(rate.Limit(qps))
	r.limiter.SetBurst(qps)
}

// GetQPS 当前QPS,0表示不限速
func (r *RateLimiter) GetQPS() int {
	limit := r.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return int(limit)
}
