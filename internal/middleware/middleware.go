package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	appContext "github.com/cradoe/banking-api/internal/context"
	"github.com/cradoe/banking-api/internal/errHandler"
	"github.com/cradoe/banking-api/internal/models"
	"github.com/cradoe/banking-api/internal/response"
	"github.com/cradoe/banking-api/internal/service"

	"github.com/tomasen/realip"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Account, error)
}

type RateLimiter interface {
	IncrWithExpire(ctx context.Context, key string, window time.Duration) (int64, error)
}

type Middleware struct {
	errHandler *errHandler.ErrorRepository
	logger     *slog.Logger
	auth       Authenticator
	limiter    RateLimiter
	rateLimit  int
}

func New(errHandler *errHandler.ErrorRepository, logger *slog.Logger, auth Authenticator, limiter RateLimiter, rateLimit int) *Middleware {
	return &Middleware{
		errHandler: errHandler,
		logger:     logger,
		auth:       auth,
		limiter:    limiter,
		rateLimit:  rateLimit,
	}
}

func (mid *Middleware) RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err != nil {
				mid.errHandler.ServerError(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (mid *Middleware) LogAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mw := response.NewMetricsResponseWriter(w)
		next.ServeHTTP(mw, r)

		var (
			ip     = realip.FromRequest(r)
			method = r.Method
			url    = r.URL.String()
			proto  = r.Proto
		)

		userAttrs := slog.Group("user", "ip", ip)
		requestAttrs := slog.Group("request", "method", method, "url", url, "proto", proto)
		responseAttrs := slog.Group("response", "status", mw.StatusCode, "size", mw.BytesCount)

		mid.logger.Info("access", userAttrs, requestAttrs, responseAttrs)
	})
}

func (mid *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authorizationHeader := r.Header.Get("Authorization")

		if authorizationHeader != "" {
			headerParts := strings.Split(authorizationHeader, " ")

			if len(headerParts) != 2 || headerParts[0] != "Bearer" {
				mid.errHandler.InvalidAuthenticationToken(w, r)
				return
			}

			account, err := mid.auth.Authenticate(r.Context(), headerParts[1])
			switch {
			case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrNotFound):
				mid.errHandler.InvalidAuthenticationToken(w, r)
				return
			case err != nil:
				mid.errHandler.ServerError(w, r, err)
				return
			}

			r = appContext.ContextSetAuthenticatedAccount(r, account)
		}

		next.ServeHTTP(w, r)
	})
}

func (mid *Middleware) RequireAuthenticatedUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authenticatedAccount := appContext.ContextGetAuthenticatedAccount(r)

		if authenticatedAccount == nil {
			mid.errHandler.AuthenticationRequired(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (mid *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return mid.RequireAuthenticatedUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := service.RequireRole(appContext.ContextGetAuthenticatedAccount(r), models.RoleAdmin)
		if err != nil {
			mid.errHandler.ServiceError(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	}))
}

// RateLimit allows rateLimit requests per client IP per minute on the wrapped route.
// When the counter store is unreachable requests are let through.
func (mid *Middleware) RateLimit(name string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if mid.limiter == nil || mid.rateLimit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		window := time.Now().Truncate(time.Minute).Unix()
		key := fmt.Sprintf("ratelimit:%s:%s:%d", name, realip.FromRequest(r), window)

		count, err := mid.limiter.IncrWithExpire(r.Context(), key, time.Minute)
		if err != nil {
			mid.logger.Warn("rate limiter unavailable", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		if count > int64(mid.rateLimit) {
			w.Header().Set("Retry-After", "60")
			mid.errHandler.TooManyRequests(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
