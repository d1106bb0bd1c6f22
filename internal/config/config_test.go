package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, 30*time.Minute, cfg.Jwt.Expiry)
	require.Equal(t, 12, cfg.Password.HashCost)
	require.False(t, cfg.Kyc.PanSurnameCheck)
	require.Equal(t, "local", cfg.Storage.Driver)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "15m")
	t.Setenv("PASSWORD_HASH_COST", "10")
	t.Setenv("KYC_PAN_SURNAME_CHECK", "true")
	t.Setenv("STORAGE_DRIVER", "cloudinary")

	cfg := Load()

	require.Equal(t, 15*time.Minute, cfg.Jwt.Expiry)
	require.Equal(t, 10, cfg.Password.HashCost)
	require.True(t, cfg.Kyc.PanSurnameCheck)
	require.Equal(t, "cloudinary", cfg.Storage.Driver)
}
