package utils // package utils provides helpers for token issuance and hashing

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthToken represents a signed HS256 JWT along with its expiry.  Tokens
// are stateless: nothing is persisted server-side, and a token stays valid
// until its exp claim elapses regardless of what happens to the user record
// afterwards.  The only remediation for a leaked token is rotating the
// signing secret, which invalidates every outstanding token at once.
type AuthToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// ErrInvalidToken is returned by ParseAuthToken for any token that is
// malformed, signed with a different secret, or expired.  Callers get no
// finer-grained reason; all three cases answer 401.
var ErrInvalidToken = errors.New("invalid or expired token")

// NewAuthToken builds and signs an HS256 JWT for a user.  The subject claim
// carries the user id; exp is ttlDays from now with no grace window on
// verification.
func NewAuthToken(secret string, userID uint64, ttlDays int) (AuthToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AuthToken{}, err
	}
	return AuthToken{Token: signed, Exp: exp}, nil
}

// ParseAuthToken verifies a serialized token against the secret and returns
// the subject user id.  Verification rejects non-HMAC signing methods, bad
// signatures and expired tokens alike with ErrInvalidToken.
func ParseAuthToken(secret, raw string) (uint64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}
