// Package token creates and validates the signed bearer tokens returned by
// the login flow. Tokens are stateless: expiry is the only invalidation
// mechanism besides a failed signature check.
package token

import (
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/reelnotes/reelnotes/users"
)

// DefaultTTL is how long issued tokens stay valid unless configured otherwise.
const DefaultTTL = time.Hour

// Verification failure kinds. The HTTP boundary collapses all three into one
// generic unauthenticated response.
var (
	ErrTokenMalformed        = stderrors.New("token malformed")
	ErrTokenSignatureInvalid = stderrors.New("token signature invalid")
	ErrTokenExpired          = stderrors.New("token expired")
)

// Claims is the set of identity facts embedded in a token. Email and Name
// are a snapshot taken at issuance; later identity changes do not affect
// already-issued tokens.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Issuer creates and verifies signed tokens with a fixed TTL.
type Issuer struct {
	signer  Signer
	ttl     time.Duration
	nowTime func() time.Time // injectable for testing
}

// IssuerOption modifies an Issuer.
type IssuerOption func(*Issuer)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.nowTime = nowFunc
	}
}

// WithTTL overrides the default token lifetime.
func WithTTL(ttl time.Duration) IssuerOption {
	return func(i *Issuer) {
		if ttl > 0 {
			i.ttl = ttl
		}
	}
}

// NewIssuer creates an Issuer using the given signer.
func NewIssuer(signer Signer, options ...IssuerOption) (*Issuer, error) {
	if signer == nil {
		return nil, errors.New("[NewIssuer] signer is required")
	}
	issuer := &Issuer{
		signer:  signer,
		ttl:     DefaultTTL,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(issuer)
	}
	return issuer, nil
}

// Issue signs a token carrying the user's identity snapshot. Two tokens
// issued for the same user at different times differ but are independently
// valid until their own expiry.
func (i *Issuer) Issue(user *users.User) (string, error) {
	now := i.nowTime()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Email: user.Email,
		Name:  user.Name,
	}

	signed, err := i.signer.Sign(claims)
	if err != nil {
		return "", errors.Wrap(err, "[Issue] signer.Sign")
	}
	return signed, nil
}

// Verify parses and validates a token. The signature covers the whole claims
// payload, so modifying any field fails with ErrTokenSignatureInvalid, and
// expiry is checked even when the signature is valid.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, i.signer.GetVerificationKey,
		jwt.WithTimeFunc(i.nowTime),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		switch {
		case stderrors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		case stderrors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
