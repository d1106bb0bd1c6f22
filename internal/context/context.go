package context

import (
	"context"
	"net/http"

	"github.com/cradoe/banking-api/internal/models"
)

type contextKey string

const (
	authenticatedAccountContextKey = contextKey("authenticatedAccount")
)

func ContextSetAuthenticatedAccount(r *http.Request, account *models.Account) *http.Request {
	ctx := context.WithValue(r.Context(), authenticatedAccountContextKey, account)
	return r.WithContext(ctx)
}

func ContextGetAuthenticatedAccount(r *http.Request) *models.Account {
	account, ok := r.Context().Value(authenticatedAccountContextKey).(*models.Account)
	if !ok {
		return nil
	}

	return account
}
