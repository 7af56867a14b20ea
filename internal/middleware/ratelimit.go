// Package middleware holds gin middleware specific to the dashboard.
package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	defaultCleanupInterval = time.Minute
	defaultStaleAfter      = 10 * time.Minute
)

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ConnectLimiter bounds how often one client IP may trigger a collection.
type ConnectLimiter struct {
	mu         sync.Mutex
	clients    map[string]*clientEntry
	rate       rate.Limit
	burst      int
	staleAfter time.Duration
	now        func() time.Time
	done       chan struct{}
	stopOnce   sync.Once
}

// NewConnectLimiter allows perMinute collections per client with the given
// burst. Stale client entries are dropped in the background until Stop.
func NewConnectLimiter(perMinute, burst int) *ConnectLimiter {
	l := &ConnectLimiter{
		clients:    make(map[string]*clientEntry),
		rate:       rate.Limit(float64(perMinute) / time.Minute.Seconds()),
		burst:      burst,
		staleAfter: defaultStaleAfter,
		now:        time.Now,
		done:       make(chan struct{}),
	}

	go l.cleanupLoop(defaultCleanupInterval)
	return l
}

func (l *ConnectLimiter) client(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.clients[ip]
	if !ok {
		entry = &clientEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.clients[ip] = entry
	}
	entry.lastSeen = l.now()
	return entry.limiter
}

// Allow reports whether ip may collect now, consuming one token if so.
func (l *ConnectLimiter) Allow(ip string) bool {
	return l.client(ip).AllowN(l.now(), 1)
}

// RetryAfter returns whole seconds until ip gets its next token.
func (l *ConnectLimiter) RetryAfter(ip string) int {
	limiter := l.client(ip)
	now := l.now()
	reservation := limiter.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	reservation.CancelAt(now)
	return int(math.Ceil(delay.Seconds()))
}

func (l *ConnectLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.done:
			return
		}
	}
}

func (l *ConnectLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for ip, entry := range l.clients {
		if now.Sub(entry.lastSeen) > l.staleAfter {
			delete(l.clients, ip)
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *ConnectLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

// Middleware rejects requests over the limit with 429 and a Retry-After header.
func (l *ConnectLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if l.Allow(ip) {
			c.Next()
			return
		}

		c.Header("Retry-After", strconv.Itoa(l.RetryAfter(ip)))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": "rate limit exceeded",
			"code":  "RATE_LIMITED",
		})
	}
}
