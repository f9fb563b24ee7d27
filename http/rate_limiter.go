package http

import (
	"sync"
	"time"
)

const (
	staleBucketAge  = 1 * time.Hour
	cleanupInterval = 30 * time.Minute
)

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimiter es un token bucket por IP de cliente: capacity solicitudes
// por ventana de refill.
type RateLimiter struct {
	mu        sync.Mutex
	capacity  int
	refillDur time.Duration
	buckets   map[string]*bucket
	stop      chan struct{}
}

func NewRateLimiter(capacity int, refillDur time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity:  capacity,
		refillDur: refillDur,
		buckets:   make(map[string]*bucket),
		stop:      make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stop:
			return
		}
	}
}

// cleanup descarta buckets de clientes que no volvieron a pegarle a la API.
func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for ip, b := range r.buckets {
		if now.Sub(b.lastRefill) > staleBucketAge {
			delete(r.buckets, ip)
		}
	}
}

func (r *RateLimiter) Stop() {
	close(r.stop)
}

func (r *RateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	b, exists := r.buckets[ip]

	if !exists {
		r.buckets[ip] = &bucket{
			tokens:     r.capacity - 1,
			lastRefill: now,
		}
		return true
	}

	if now.Sub(b.lastRefill) >= r.refillDur {
		b.tokens = r.capacity
		b.lastRefill = now
	}

	if b.tokens <= 0 {
		return false
	}

	b.tokens--
	return true
}
