package middleware

import (
	"net/http"
	"sync"
	"time"

	"musa/utils"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultRequestsPerMin = 200
	// Limiters idle this long are dropped.
	limiterIdleTTL = 10 * time.Minute
)

// rateLimiterStore holds the per-IP limiters. Entries expire once idle.
type rateLimiterStore struct {
	limiters *cache.Cache
	perMin   int
	mu       sync.Mutex
}

func newRateLimiterStore(perMin int) *rateLimiterStore {
	if perMin <= 0 {
		perMin = defaultRequestsPerMin
	}
	return &rateLimiterStore{
		limiters: cache.New(limiterIdleTTL, limiterIdleTTL),
		perMin:   perMin,
	}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.cached(ip)
	if !ok {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)
	}
	s.limiters.Set(ip, limiter, cache.DefaultExpiration)
	return limiter
}

func (s *rateLimiterStore) cached(ip string) (*rate.Limiter, bool) {
	v, found := s.limiters.Get(ip)
	if !found {
		return nil, false
	}
	limiter, ok := v.(*rate.Limiter)
	return limiter, ok
}

// RateLimitMiddleware limits requests per IP address.
func RateLimitMiddleware(maxRequestsPerMin int) gin.HandlerFunc {
	store := newRateLimiterStore(maxRequestsPerMin)
	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !store.getLimiter(ip).Allow() {
			utils.GetLogger().Warn("Rate limit exceeded", zap.String("ip", ip))
			abort(c, http.StatusTooManyRequests, "Rate limit exceeded. Try again later.")
			return
		}
		c.Next()
	}
}
