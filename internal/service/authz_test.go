package service

import (
	"context"
	"testing"

	"github.com/cradoe/banking-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	admin := f.admin(t)
	account := f.register(t, "asha@example.com", "9876543210")
	ctx := context.Background()

	t.Run("missing token", func(t *testing.T) {
		_, err := f.svc.Authenticate(ctx, "")
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("tampered token", func(t *testing.T) {
		token, _, err := f.svc.tokens.Issue(account.ID)
		require.NoError(t, err)

		_, err = f.svc.Authenticate(ctx, token+"x")
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("deactivated account", func(t *testing.T) {
		token, _, err := f.svc.tokens.Issue(account.ID)
		require.NoError(t, err)

		require.NoError(t, f.svc.AdminDeactivate(ctx, admin, account.ID))

		_, err = f.svc.Authenticate(ctx, token)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRequireRole(t *testing.T) {
	user := &models.Account{Role: models.RoleUser}
	admin := &models.Account{Role: models.RoleAdmin}

	require.ErrorIs(t, RequireRole(nil, models.RoleAdmin), ErrUnauthenticated)
	require.ErrorIs(t, RequireRole(user, models.RoleAdmin), ErrForbidden)
	require.NoError(t, RequireRole(admin, models.RoleAdmin))
	require.NoError(t, RequireRole(user, models.RoleUser, models.RoleAdmin))
}
