package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleExpiry = 10 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter keeps one token bucket per client address. Buckets idle
// for longer than limiterIdleExpiry are dropped on the next Allow.
type clientLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	clients map[string]*clientBucket
	swept   time.Time
	now     func() time.Time
}

func newClientLimiter(perMinute float64, burst int) *clientLimiter {
	if perMinute <= 0 {
		perMinute = 6
	}
	if burst <= 0 {
		burst = 3
	}

	return &clientLimiter{
		limit:   rate.Limit(perMinute / 60),
		burst:   burst,
		clients: make(map[string]*clientBucket),
		now:     time.Now,
	}
}

func (l *clientLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.swept) > limiterIdleExpiry {
		for key, bucket := range l.clients {
			if now.Sub(bucket.lastSeen) > limiterIdleExpiry {
				delete(l.clients, key)
			}
		}
		l.swept = now
	}

	bucket, ok := l.clients[client]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = bucket
	}
	bucket.lastSeen = now

	return bucket.limiter.AllowN(now, 1)
}

// clientAddress returns the connection's remote host. With trustedHops
// proxies in front of the server it instead takes the X-Forwarded-For entry
// appended by the outermost trusted proxy; anything left of it is client
// controlled. A header shorter than trustedHops did not come through the
// proxy chain and is ignored.
func clientAddress(r *http.Request, trustedHops int) string {
	remote, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remote = r.RemoteAddr
	}

	if trustedHops <= 0 {
		return remote
	}

	var hops []string
	for _, header := range r.Header.Values("X-Forwarded-For") {
		for _, hop := range strings.Split(header, ",") {
			hops = append(hops, strings.TrimSpace(hop))
		}
	}

	if len(hops) < trustedHops {
		return remote
	}
	if client := hops[len(hops)-trustedHops]; client != "" {
		return client
	}
	return remote
}
