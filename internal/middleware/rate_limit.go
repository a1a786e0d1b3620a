package middleware

import (
	"sync"
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

// TokenBucket 令牌桶限流器
type TokenBucket struct {
	capacity   int64 // 桶容量
	tokens     int64 // 当前令牌数
	refillRate int64 // 每秒补充的令牌数
	lastRefill time.Time
	now        func() time.Time
	mu         sync.Mutex
}

// NewTokenBucket 创建令牌桶，容量或补充速率非正时按 1 处理
func NewTokenBucket(capacity, refillRate int64) *TokenBucket {
	if capacity <= 0 {
		capacity = 1
	}
	if refillRate <= 0 {
		refillRate = 1
	}
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: time.Now(),
		now:        time.Now,
	}
}

// Allow 检查是否允许请求
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	// 按整秒补充，不足一秒的部分留到下次
	now := tb.now()
	elapsed := int64(now.Sub(tb.lastRefill) / time.Second)
	if elapsed > 0 {
		tb.tokens += elapsed * tb.refillRate
		if tb.tokens > tb.capacity {
			tb.tokens = tb.capacity
		}
		tb.lastRefill = tb.lastRefill.Add(time.Duration(elapsed) * time.Second)
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// RateLimitMiddleware 限流中间件，超限返回 429
func RateLimitMiddleware(bucket *TokenBucket) iris.Handler {
	return func(ctx iris.Context) {
		if !bucket.Allow() {
			zap.L().Warn("rate limited",
				zap.String("method", ctx.Method()),
				zap.String("path", ctx.Path()),
				zap.String("remote", ctx.RemoteAddr()))
			ctx.StopWithJSON(iris.StatusTooManyRequests, iris.Map{
				"code": iris.StatusTooManyRequests,
				"msg":  "too many requests, please retry later",
			})
			return
		}
		ctx.Next()
	}
}

// RateLimit 按给定容量和速率创建独立的令牌桶并返回中间件
func RateLimit(capacity, refillRate int64) iris.Handler {
	return RateLimitMiddleware(NewTokenBucket(capacity, refillRate))
}
