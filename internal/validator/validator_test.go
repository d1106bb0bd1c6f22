package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidator_Check(t *testing.T) {
	var v Validator

	v.Check(true, "never added")
	require.False(t, v.HasErrors())

	v.Check(false, "Email is required")
	require.True(t, v.HasErrors())
	require.Equal(t, []string{"Email is required"}, v.Errors)
}

func TestHelpers(t *testing.T) {
	require.True(t, IsEmail("ada@example.com"))
	require.False(t, IsEmail("ada@"))
	require.True(t, Matches("9876543210", RgxPhoneNumber))
	require.False(t, Matches("+19876543210", RgxPhoneNumber))
	require.False(t, NotBlank("   "))
	require.True(t, MinRunes("Ada", 1))
	require.False(t, MaxRunes("abcdef", 5))
}

func TestIsAdult(t *testing.T) {
	now := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	require.True(t, IsAdult(time.Date(2008, 10, 15, 0, 0, 0, 0, time.UTC), now, 18))
	require.False(t, IsAdult(time.Date(2008, 10, 16, 0, 0, 0, 0, time.UTC), now, 18))
}
