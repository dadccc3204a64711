package middleware

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"fleetstock/internal/pkg/cache"
	"fleetstock/internal/pkg/logger"
)

const rateLimitKeyPrefix = "rate-limit:"

// RateLimiter aplica uma janela fixa por IP no Redis: no máximo limit requisições a cada period.
// Se o cache estiver indisponível a requisição segue (fail-open) e um aviso é registrado.
func RateLimiter(client cache.Client, limit int, period time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := rateLimitKeyPrefix + clientIP(r)

			count, err := client.GetInt(ctx, key)
			if errors.Is(err, cache.ErrCacheMiss) {
				if setErr := client.Set(ctx, key, 1, period); setErr != nil {
					log.Warn("Falha ao iniciar janela de rate limit.", map[string]interface{}{"key": key, "error": setErr.Error()})
				}
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-1))
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				log.Warn("Rate limit indisponível, requisição liberada.", map[string]interface{}{"key": key, "error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			if count >= limit {
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", strconv.Itoa(int(period.Seconds())))
				writeTooManyRequests(w)
				return
			}

			if _, err := client.Incr(ctx, key); err != nil {
				log.Warn("Falha ao incrementar contador de rate limit.", map[string]interface{}{"key": key, "error": err.Error()})
			}
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-count-1))
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func writeTooManyRequests(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	w.Write([]byte(`{"success":false,"code":429,"category":"RATE_LIMITED","message":"Limite de requisições excedido."}`))
}
