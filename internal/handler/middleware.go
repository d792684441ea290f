package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"order-tracker/internal/logger/sl"
	"order-tracker/internal/metric"
	"order-tracker/internal/models"
	"order-tracker/internal/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"

	msgTooManyRequests = "too many lookups, try again later"
)

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		metric.ObserveRequest(time.Since(start), c.Writer.Status())
	}
}

// RequestID keeps an incoming X-Request-ID or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger writes one line per request. Query strings and bodies are
// not logged.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
			slog.String(requestIDKey, c.GetString(requestIDKey)),
		}
		switch {
		case status >= http.StatusInternalServerError:
			log.ErrorContext(ctx, "request", attrs...)
		case status >= http.StatusBadRequest:
			log.WarnContext(ctx, "request", attrs...)
		default:
			log.InfoContext(ctx, "request", attrs...)
		}
	}
}

// RateLimit admits requests per client IP. Limiter failures let the request
// through.
func RateLimit(limiter ratelimit.Limiter, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		allowed, err := limiter.Allow(ctx, c.ClientIP())
		if err != nil {
			log.WarnContext(ctx, "rate limiter unavailable", sl.Err(err))
			c.Next()
			return
		}
		if !allowed {
			metric.RateLimitedTotal.Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.SearchResponse{
				Success: false,
				Message: msgTooManyRequests,
			})
			return
		}
		c.Next()
	}
}

// CORS allows the listed origins. An entry is a host, a "*.suffix" wildcard
// or "*" for any origin.
func CORS(allowed []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return originAllowed(origin, allowed) },
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders:   []string{requestIDHeader},
		MaxAge:          12 * time.Hour,
	})
}

func originAllowed(origin string, allowed []string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Hostname() == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())

	for _, entry := range allowed {
		entry = strings.ToLower(strings.TrimSpace(entry))
		entry = strings.TrimPrefix(strings.TrimPrefix(entry, "https://"), "http://")
		entry = strings.TrimSuffix(entry, "/")
		switch {
		case entry == "*":
			return true
		case strings.HasPrefix(entry, "*."):
			if strings.HasSuffix(host, entry[1:]) {
				return true
			}
		case host == entry:
			return true
		}
	}
	return false
}
