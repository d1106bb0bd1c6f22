package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/pascaldekloe/jwt"
)

var ErrTokenInvalid = errors.New("invalid or expired token")

type TokenConfig struct {
	SecretKey string
	// Issuer is used for both the iss and aud claims.
	Issuer string
	Expiry time.Duration
}

// TokenIssuer signs and verifies HS256 bearer tokens carrying the account id as subject.
// Verification is stateless.
type TokenIssuer struct {
	key    []byte
	issuer string
	expiry time.Duration
	now    func() time.Time
}

func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("token signing key is required")
	}
	if cfg.Expiry <= 0 {
		return nil, errors.New("token expiry must be positive")
	}

	return &TokenIssuer{
		key:    []byte(cfg.SecretKey),
		issuer: cfg.Issuer,
		expiry: cfg.Expiry,
		now:    time.Now,
	}, nil
}

func (t *TokenIssuer) Issue(accountID int64) (string, time.Time, error) {
	now := t.now()
	expiry := now.Add(t.expiry)

	var claims jwt.Claims
	claims.Subject = strconv.FormatInt(accountID, 10)
	claims.Issued = jwt.NewNumericTime(now)
	claims.NotBefore = jwt.NewNumericTime(now)
	claims.Expires = jwt.NewNumericTime(expiry)
	claims.Issuer = t.issuer
	claims.Audiences = []string{t.issuer}

	token, err := claims.HMACSign(jwt.HS256, t.key)
	if err != nil {
		return "", time.Time{}, err
	}

	return string(token), expiry, nil
}

func (t *TokenIssuer) Verify(token string) (int64, error) {
	claims, err := jwt.HMACCheck([]byte(token), t.key)
	if err != nil {
		return 0, ErrTokenInvalid
	}

	if claims.Expires == nil || !claims.Valid(t.now()) {
		return 0, ErrTokenInvalid
	}

	if claims.Issuer != t.issuer || !claims.AcceptAudience(t.issuer) {
		return 0, ErrTokenInvalid
	}

	accountID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || accountID <= 0 {
		return 0, ErrTokenInvalid
	}

	return accountID, nil
}
