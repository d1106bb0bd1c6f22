package service

import (
	"context"

	"github.com/cradoe/banking-api/internal/models"
	"golang.org/x/exp/slices"
)

// Authenticate resolves a bearer token to the active account it was issued for.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.Account, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	accountID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	account, found, err := s.accounts.GetActive(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}

	return account, nil
}

// RequireRole fails with ErrForbidden unless the account holds one of roles.
func RequireRole(account *models.Account, roles ...string) error {
	if account == nil {
		return ErrUnauthenticated
	}

	if !slices.Contains(roles, account.Role) {
		return ErrForbidden
	}

	return nil
}
