package httpapi

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/its-jojoo/stringscope/internal/metric"
)

// RateLimiter allows each client IP max requests per window as a token
// bucket: the full allowance is available at once and refills evenly.
type RateLimiter struct {
	max    int
	window time.Duration
	every  rate.Limit
	now    func() time.Time

	mu      sync.Mutex
	clients map[string]*client
	sweptAt time.Time

	rejected func()
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	if max <= 0 {
		max = 1
	}
	return &RateLimiter{
		max:      max,
		window:   window,
		every:    rate.Every(window / time.Duration(max)),
		now:      time.Now,
		clients:  make(map[string]*client),
		rejected: func() {},
	}
}

// WithClock replaces the time source. Used by tests.
func (l *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	l.now = now
	return l
}

// WithMetrics counts rejected requests in m.
func (l *RateLimiter) WithMetrics(m *metric.Metrics) *RateLimiter {
	l.rejected = m.RateLimited.Inc
	return l
}

// Allow consumes one token for ip and reports the tokens left.
func (l *RateLimiter) Allow(ip string) (bool, int) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)
	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.every, l.max)}
		l.clients[ip] = c
	}
	c.lastSeen = now

	allowed := c.limiter.AllowN(now, 1)
	remaining := int(c.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining
}

// sweep drops clients idle for a whole window; their bucket is full again.
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.sweptAt) < l.window {
		return
	}
	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) >= l.window {
			delete(l.clients, ip)
		}
	}
	l.sweptAt = now
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, remaining := l.Allow(clientIP(r))
		w.Header().Set("RateLimit-Limit", strconv.Itoa(l.max))
		w.Header().Set("RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			l.rejected()
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(l.refill().Seconds()))))
			respondError(w, http.StatusTooManyRequests, "too many requests, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// refill is the time it takes to earn back one token.
func (l *RateLimiter) refill() time.Duration {
	return l.window / time.Duration(l.max)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
