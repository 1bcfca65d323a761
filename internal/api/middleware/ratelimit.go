package middleware

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/simplelru"
	"golang.org/x/time/rate"
)

// maxClients bounds how many per-IP limiters are tracked at once.
const maxClients = 10000

// RateLimiter hands out one token bucket per client IP. The least recently
// seen client is forgotten when the table is full.
type RateLimiter struct {
	mu      sync.Mutex
	clients *simplelru.LRU
	limit   rate.Limit
	burst   int
}

// NewRateLimiter allows perMinute requests per client with burst on top.
func NewRateLimiter(perMinute, burst int) (*RateLimiter, error) {
	return newRateLimiter(perMinute, burst, maxClients)
}

func newRateLimiter(perMinute, burst, size int) (*RateLimiter, error) {
	if perMinute <= 0 || burst <= 0 {
		return nil, fmt.Errorf("rate limiter: perMinute and burst must be positive")
	}
	clients, err := simplelru.NewLRU(size, nil)
	if err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	return &RateLimiter{
		clients: clients,
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
	}, nil
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Get marks the client as recently seen
	if l, ok := rl.clients.Get(ip); ok {
		return l.(*rate.Limiter)
	}
	l := rate.NewLimiter(rl.limit, rl.burst)
	rl.clients.Add(ip, l)
	return l
}

// Limit rejects requests over the client's budget with 429.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiter(clientIP(r)).Allow() {
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP expects chi's RealIP to have run first.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
