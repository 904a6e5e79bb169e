package middlewares

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yeremiapane/kitchenlog/utils"
)

// RateLimiter is a per-IP sliding window over the whole API. Clients that
// stay quiet for a full window are dropped from the table.
type RateLimiter struct {
	rate      int
	interval  time.Duration
	ips       map[string][]time.Time
	lastSweep time.Time
	mu        sync.Mutex
}

func NewRateLimiter(rate int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		rate:     rate,
		interval: interval,
		ips:      make(map[string][]time.Time),
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			utils.RespondError(c, http.StatusTooManyRequests, errors.New("too many requests, please slow down"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.interval)
	if now.Sub(rl.lastSweep) >= rl.interval {
		rl.sweep(cutoff)
		rl.lastSweep = now
	}

	valid := rl.ips[ip][:0]
	for _, t := range rl.ips[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	if len(valid) >= rl.rate {
		rl.ips[ip] = valid
		return false
	}
	rl.ips[ip] = append(valid, now)
	return true
}

// sweep forgets every IP whose newest request is at or before cutoff.
func (rl *RateLimiter) sweep(cutoff time.Time) {
	for ip, times := range rl.ips {
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(rl.ips, ip)
		}
	}
}

// NewStrictRateLimiter throttles passphrase attempts with a token bucket per
// client IP: burst attempts, then one every interval.
func NewStrictRateLimiter(interval time.Duration, burst int) gin.HandlerFunc {
	limiters := newIPLimiters(interval, burst)
	return func(c *gin.Context) {
		if !limiters.allow(c.ClientIP(), time.Now()) {
			utils.RespondError(c, http.StatusTooManyRequests, errors.New("too many attempts, please wait a moment"))
			c.Abort()
			return
		}
		c.Next()
	}
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiters keeps one token bucket per IP. A bucket left alone long enough
// to refill completely is no different from a new one, so it is evicted.
type ipLimiters struct {
	mu        sync.Mutex
	every     rate.Limit
	burst     int
	idle      time.Duration
	entries   map[string]*ipLimiter
	lastSweep time.Time
}

func newIPLimiters(interval time.Duration, burst int) *ipLimiters {
	return &ipLimiters{
		every:   rate.Every(interval),
		burst:   burst,
		idle:    interval * time.Duration(burst),
		entries: make(map[string]*ipLimiter),
	}
}

func (l *ipLimiters) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.idle {
		for key, e := range l.entries {
			if now.Sub(e.lastSeen) >= l.idle {
				delete(l.entries, key)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.entries[ip]
	if !ok {
		e = &ipLimiter{limiter: rate.NewLimiter(l.every, l.burst)}
		l.entries[ip] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}
