// Package auth implements the registration and login flows, orchestrating
// the credential store, the password hasher, and the token issuer.
package auth

import (
	"context"
	stderrors "errors"

	"github.com/pkg/errors"
	"github.com/reelnotes/reelnotes/token"
	"github.com/reelnotes/reelnotes/users"
)

// Service provides the two operations exposed to the HTTP boundary:
// Register and Login.
type Service struct {
	users     users.Repo
	hasher    PasswordHasher
	issuer    *token.Issuer
	dummyHash string // verified on unknown emails to flatten response timing
}

// NewService initializes a Service with required dependencies.
func NewService(repo users.Repo, hasher PasswordHasher, issuer *token.Issuer) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[NewService] users repo is required")
	}
	if hasher == nil {
		return nil, errors.New("[NewService] password hasher is required")
	}
	if issuer == nil {
		return nil, errors.New("[NewService] token issuer is required")
	}

	dummyHash, err := hasher.Hash("reelnotes-dummy-password")
	if err != nil {
		return nil, errors.Wrap(err, "[NewService] hashing dummy password")
	}

	return &Service{
		users:     repo,
		hasher:    hasher,
		issuer:    issuer,
		dummyHash: dummyHash,
	}, nil
}

// Register validates the input, hashes the password, and creates the user.
// The plaintext password is never stored or logged. A taken email surfaces
// as users.ErrDuplicateEmail.
func (s *Service) Register(ctx context.Context, name, email, password string) (*users.User, error) {
	if err := ValidateRegistration(name, email, password); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, errors.Wrap(err, "[Register] hashing password")
	}

	user := &users.User{Name: name, Email: email, PasswordHash: passwordHash}
	if err := s.users.Create(ctx, user); err != nil {
		if stderrors.Is(err, users.ErrDuplicateEmail) {
			return nil, users.ErrDuplicateEmail
		}
		return nil, errors.Wrap(err, "[Register] users.Create")
	}

	return user, nil
}

// Login authenticates the email/password pair and issues a signed token.
// An unknown email and a wrong password both fail with the identical
// ErrInvalidCredentials. When the email is unknown a dummy hash is still
// verified, so the two paths take comparable time.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, users.ErrNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return "", ErrInvalidCredentials
		}
		return "", errors.Wrap(err, "[Login] users.GetByEmail")
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(user)
	if err != nil {
		return "", errors.Wrap(err, "[Login] issuer.Issue")
	}
	return signed, nil
}
