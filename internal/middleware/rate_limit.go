package middleware

import (
	"sync"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/vanshrane27/electrohub-showcase/internal/config"
)

// TokenBucket 令牌桶限流器，按经过的时间连续补充
type TokenBucket struct {
	capacity   float64 // 桶容量
	tokens     float64 // 当前令牌数
	refillRate float64 // 每秒补充的令牌数
	lastRefill time.Time
	now        func() time.Time
	mu         sync.Mutex
}

func newBucket(capacity, refillRate float64, now func() time.Time) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: now(),
		now:        now,
	}
}

func (tb *TokenBucket) refill(now time.Time) {
	if elapsed := now.Sub(tb.lastRefill); elapsed > 0 {
		tb.tokens += elapsed.Seconds() * tb.refillRate
		if tb.tokens > tb.capacity {
			tb.tokens = tb.capacity
		}
		tb.lastRefill = now
	}
}

// Allow 检查是否允许请求
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill(tb.now())
	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// full 桶已回满，可以回收
func (tb *TokenBucket) full(now time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.refill(now)
	return tb.tokens >= tb.capacity
}

// sweepEvery 每新建这么多个桶清理一次回满的桶
const sweepEvery = 1024

// Limiter 按客户端 IP 分桶
type Limiter struct {
	capacity   float64
	refillRate float64
	now        func() time.Time

	mu      sync.Mutex
	buckets map[string]*TokenBucket
	created int
}

// NewLimiter 创建按 IP 分桶的限流器
func NewLimiter(capacity, refillRate int64) *Limiter {
	return &Limiter{
		capacity:   float64(capacity),
		refillRate: float64(refillRate),
		now:        time.Now,
		buckets:    make(map[string]*TokenBucket),
	}
}

// Allow 检查 key 对应的桶
func (l *Limiter) Allow(key string) bool {
	return l.bucket(key).Allow()
}

func (l *Limiter) bucket(key string) *TokenBucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}
	l.created++
	if l.created%sweepEvery == 0 {
		now := l.now()
		for k, b := range l.buckets {
			if b.full(now) {
				delete(l.buckets, k)
			}
		}
	}
	b := newBucket(l.capacity, l.refillRate, l.now)
	l.buckets[key] = b
	return b
}

// Len 当前桶数量
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func tooManyRequests(ctx iris.Context) {
	ctx.StopWithJSON(iris.StatusTooManyRequests, iris.Map{
		"code": iris.StatusTooManyRequests,
		"msg":  "Too many requests, please try again later",
	})
}

// ClientRateLimit 按 ctx.RemoteAddr() 分桶的限流中间件
func ClientRateLimit(l *Limiter) iris.Handler {
	return func(ctx iris.Context) {
		if !l.Allow(ctx.RemoteAddr()) {
			tooManyRequests(ctx)
			return
		}
		ctx.Next()
	}
}

// FormRateLimit 写接口的按 IP 限流：前台的下单、联系表单、保修登记，以及 /functions/v1 下的回调
func FormRateLimit(cfg *config.RateLimitConfig) iris.Handler {
	capacity, refill := cfg.Capacity, cfg.RefillPerSecond
	if capacity <= 0 {
		capacity = 20
	}
	if refill <= 0 {
		refill = 5
	}
	return ClientRateLimit(NewLimiter(capacity, refill))
}
