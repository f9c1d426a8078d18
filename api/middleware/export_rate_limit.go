package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/kingcapco/salesops-backend/api/responses"
	"github.com/kingcapco/salesops-backend/pkg/config"
	pkgerrors "github.com/kingcapco/salesops-backend/pkg/errors"
	"github.com/kingcapco/salesops-backend/pkg/logger"
)

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// ExportRateLimit throttles export endpoints per user and per IP. Rendering
// workbooks is the most expensive thing this API does, so it gets its own
// budget instead of a blanket limit.
func ExportRateLimit(cfg config.ExportRateLimitConfig, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || cfg.Window <= 0 || (cfg.UserLimit <= 0 && cfg.IPLimit <= 0) {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if cfg.UserLimit > 0 {
				if userID := UserIDFromContext(ctx); userID != "" {
					scope := fmt.Sprintf("export:user:%s", userID)
					if blocked := enforce(ctx, logg, w, store, scope, cfg.Window, int64(cfg.UserLimit), "user"); blocked {
						return
					}
				}
			}
			if cfg.IPLimit > 0 {
				if ip := clientIP(r); ip != "" {
					scope := fmt.Sprintf("export:ip:%s", ip)
					if blocked := enforce(ctx, logg, w, store, scope, cfg.Window, int64(cfg.IPLimit), "ip"); blocked {
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// enforce counts the attempt against the scope's window and writes the error
// response when the limit is exceeded or the store is unavailable. Returns
// true when the request must not proceed.
func enforce(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, store rateLimiterStore, scope string, window time.Duration, limit int64, kind string) bool {
	allowed, count, err := store.FixedWindowAllow(ctx, scope, limit, window)
	if err != nil {
		responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
		return true
	}
	if allowed {
		return false
	}
	if logg != nil {
		logCtx := logg.WithFields(ctx, map[string]any{
			"scope":          kind,
			"attempts":       count,
			"limit":          limit,
			"window_seconds": int(window.Seconds()),
		})
		logg.Warn(logCtx, "export.rate_limit.blocked")
	}
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "export rate limit exceeded"))
	return true
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
