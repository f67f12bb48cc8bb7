package server

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/chargeplan/chargeplan/pkg/metrics"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// limiterIdleExpiry is how long a client's limiter is kept after its last
// request.
const limiterIdleExpiry = 10 * time.Minute

// ipRateLimiter keeps a token bucket per client IP. Idle buckets expire.
type ipRateLimiter struct {
	limiters *cache.Cache
	r        rate.Limit
	b        int
}

func newIPRateLimiter(r rate.Limit, b int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: cache.New(limiterIdleExpiry, limiterIdleExpiry),
		r:        r,
		b:        b,
	}
}

func (i *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	if v, found := i.limiters.Get(ip); found {
		// refresh the expiry
		i.limiters.SetDefault(ip, v)
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(i.r, i.b)
	if err := i.limiters.Add(ip, limiter, cache.DefaultExpiration); err != nil {
		// another request added one first
		if v, found := i.limiters.Get(ip); found {
			return v.(*rate.Limiter)
		}
	}
	return limiter
}

func (i *ipRateLimiter) Allow(ip string) bool {
	return i.getLimiter(ip).Allow()
}

// clientIP returns the first X-Forwarded-For hop when present (set by the
// load balancer) and the remote address otherwise.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(clientIP(r)) {
			metrics.RateLimitedTotal.Inc()
			w.Header().Set("Retry-After", "1")
			writeJSONError(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
