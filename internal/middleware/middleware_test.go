package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	appContext "github.com/cradoe/banking-api/internal/context"
	"github.com/cradoe/banking-api/internal/errHandler"
	"github.com/cradoe/banking-api/internal/helper"
	"github.com/cradoe/banking-api/internal/models"
	"github.com/cradoe/banking-api/internal/service"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	accounts map[string]*models.Account
	err      error
}

func (f *fakeAuthenticator) Authenticate(ctx context.Context, token string) (*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	account, ok := f.accounts[token]
	if !ok {
		return nil, service.ErrUnauthenticated
	}
	return account, nil
}

type fakeLimiter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (f *fakeLimiter) IncrWithExpire(ctx context.Context, key string, window time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[key]++
	return f.counts[key], nil
}

func newTestMiddleware(auth Authenticator, limiter RateLimiter, limit int) *Middleware {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	help := helper.New("http://localhost", &sync.WaitGroup{}, logger)
	errs := errHandler.New("", nil, logger, help)

	return New(errs, logger, auth, limiter, limit)
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if account := appContext.ContextGetAuthenticatedAccount(r); account != nil {
		w.Header().Set("X-Account", account.Email)
	}
	w.WriteHeader(http.StatusNoContent)
})

func serve(h http.Handler, header string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	return rr
}

func TestAuthenticate(t *testing.T) {
	auth := &fakeAuthenticator{accounts: map[string]*models.Account{
		"user-token":  {ID: 1, Email: "asha@example.com", Role: models.RoleUser},
		"admin-token": {ID: 2, Email: "admin@example.com", Role: models.RoleAdmin},
	}}
	mid := newTestMiddleware(auth, nil, 0)

	t.Run("valid token", func(t *testing.T) {
		rr := serve(mid.Authenticate(mid.RequireAuthenticatedUser(okHandler)), "Bearer user-token")
		require.Equal(t, http.StatusNoContent, rr.Code)
		require.Equal(t, "asha@example.com", rr.Header().Get("X-Account"))
	})

	t.Run("no header", func(t *testing.T) {
		rr := serve(mid.Authenticate(mid.RequireAuthenticatedUser(okHandler)), "")
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		rr := serve(mid.Authenticate(okHandler), "Bearer nope")
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
	})

	t.Run("malformed header", func(t *testing.T) {
		rr := serve(mid.Authenticate(okHandler), "Token user-token")
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("non admin", func(t *testing.T) {
		rr := serve(mid.Authenticate(mid.RequireAdmin(okHandler)), "Bearer user-token")
		require.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("admin", func(t *testing.T) {
		rr := serve(mid.Authenticate(mid.RequireAdmin(okHandler)), "Bearer admin-token")
		require.Equal(t, http.StatusNoContent, rr.Code)
	})
}

func TestAuthenticate_StoreFailure(t *testing.T) {
	mid := newTestMiddleware(&fakeAuthenticator{err: errors.New("db down")}, nil, 0)

	rr := serve(mid.Authenticate(okHandler), "Bearer user-token")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRateLimit(t *testing.T) {
	mid := newTestMiddleware(&fakeAuthenticator{}, &fakeLimiter{counts: map[string]int64{}}, 2)
	h := mid.RateLimit("login", okHandler)

	require.Equal(t, http.StatusNoContent, serve(h, "").Code)
	require.Equal(t, http.StatusNoContent, serve(h, "").Code)

	rr := serve(h, "")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	require.Equal(t, "60", rr.Header().Get("Retry-After"))
}

func TestRateLimit_FailsOpen(t *testing.T) {
	mid := newTestMiddleware(&fakeAuthenticator{}, &fakeLimiter{err: errors.New("redis down")}, 1)
	h := mid.RateLimit("login", okHandler)

	require.Equal(t, http.StatusNoContent, serve(h, "").Code)
	require.Equal(t, http.StatusNoContent, serve(h, "").Code)
}

func TestRecoverPanic(t *testing.T) {
	mid := newTestMiddleware(&fakeAuthenticator{}, nil, 0)
	h := mid.RecoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := serve(h, "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
}
