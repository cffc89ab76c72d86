package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-kitchen/utils"
	"golang.org/x/time/rate"
)

// clientIdleWindow is how long a bucket takes to refill completely. A client
// idle that long is indistinguishable from a new one, so its limiter is dropped.
const clientIdleWindow = time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginRateLimiter throttles credential checks per client IP with a token bucket.
type LoginRateLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

// NewLoginRateLimiter allows perMinute attempts per IP, refilled evenly.
// perMinute <= 0 disables limiting.
func NewLoginRateLimiter(perMinute int) *LoginRateLimiter {
	rl := &LoginRateLimiter{
		limit:   rate.Inf,
		now:     time.Now,
		clients: make(map[string]*clientLimiter),
	}
	if perMinute > 0 {
		rl.limit = rate.Every(time.Minute / time.Duration(perMinute))
		rl.burst = perMinute
	}
	return rl
}

func (rl *LoginRateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= clientIdleWindow {
		for key, client := range rl.clients {
			if now.Sub(client.lastSeen) >= clientIdleWindow {
				delete(rl.clients, key)
			}
		}
		rl.lastSweep = now
	}

	client, ok := rl.clients[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = client
	}
	client.lastSeen = now
	return client.limiter
}

func (rl *LoginRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit == rate.Inf {
			c.Next()
			return
		}
		if !rl.limiterFor(c.ClientIP()).Allow() {
			utils.InfoLogger.WithField("client_ip", c.ClientIP()).Warn("login rate limit hit")
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.JSONResponse{
				Status:  false,
				Message: "too many login attempts, try again later",
			})
			return
		}
		c.Next()
	}
}
