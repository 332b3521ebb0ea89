// Package middleware holds the HTTP middleware mounted on the chi router.
package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Vovarama1992/quote-agent/internal/httpkit"
	"github.com/Vovarama1992/quote-agent/internal/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses an incoming X-Request-ID or generates one, and stores it
// in the request context for the logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), logger.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogger logs every request with status and latency.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.WithContext(r.Context()).HTTPRequest(
				r.Method,
				r.URL.Path,
				status,
				float64(time.Since(start).Microseconds())/1000,
				clientIP(r),
			)
		})
	}
}

// defaultLimiterIdleTTL is how long a client's bucket survives without requests.
const defaultLimiterIdleTTL = 10 * time.Minute

// IPRateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than the idle TTL are dropped on the next sweep.
type IPRateLimiter struct {
	limiters sync.Map // ip -> *limiterEntry
	rate     rate.Limit
	burst    int
	log      *logger.Logger

	idleTTL   time.Duration
	now       func() time.Time
	sweepMu   sync.Mutex
	lastSweep time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

func NewIPRateLimiter(rps float64, burst int, log *logger.Logger) *IPRateLimiter {
	return &IPRateLimiter{
		rate:      rate.Limit(rps),
		burst:     burst,
		log:       log,
		idleTTL:   defaultLimiterIdleTTL,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

func (i *IPRateLimiter) limiter(ip string, now time.Time) *rate.Limiter {
	v, ok := i.limiters.Load(ip)
	if !ok {
		v, _ = i.limiters.LoadOrStore(ip, &limiterEntry{limiter: rate.NewLimiter(i.rate, i.burst)})
	}
	e := v.(*limiterEntry)
	e.lastSeen.Store(now.UnixNano())
	return e.limiter
}

// sweep drops idle buckets, at most once per idle TTL.
func (i *IPRateLimiter) sweep(now time.Time) {
	i.sweepMu.Lock()
	if now.Sub(i.lastSweep) < i.idleTTL {
		i.sweepMu.Unlock()
		return
	}
	i.lastSweep = now
	i.sweepMu.Unlock()

	cutoff := now.Add(-i.idleTTL).UnixNano()
	i.limiters.Range(func(k, v any) bool {
		if v.(*limiterEntry).lastSeen.Load() < cutoff {
			i.limiters.Delete(k)
		}
		return true
	})
}

// Len reports how many client buckets are held.
func (i *IPRateLimiter) Len() int {
	n := 0
	i.limiters.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Handler answers 429 once a client exhausts its bucket. This is the one
// non-validation error status the chat endpoint can return.
func (i *IPRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := i.now()
		i.sweep(now)

		ip := clientIP(r)
		if !i.limiter(ip, now).Allow() {
			if i.log != nil {
				i.log.RateLimitExceeded(ip, r.URL.Path)
			}
			httpkit.JSON(w, http.StatusTooManyRequests, httpkit.ErrorResponse{Error: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
