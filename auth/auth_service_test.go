package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/reelnotes/reelnotes/auth"
	"github.com/reelnotes/reelnotes/token"
	"github.com/reelnotes/reelnotes/users"
	fakeuserrepo "github.com/reelnotes/reelnotes/users/repofake"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	secretStr        = "test-signing-secret"
	testUserName     = "Ana"
	testUserEmail    = "ana@x.com"
	testUserPassword = "secret123"
)

// testFixture holds all test dependencies
type testFixture struct {
	userRepo *fakeuserrepo.FakeUserRepo
	issuer   *token.Issuer
	service  *auth.Service
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	ur := fakeuserrepo.NewFakeUserRepo()

	issuer, err := token.NewIssuer(token.NewHMACSigner(secretStr))
	require.NoError(t, err)

	service, err := auth.NewService(ur, auth.NewBcryptHasher(bcrypt.MinCost), issuer)
	require.NoError(t, err)

	return &testFixture{
		userRepo: ur,
		issuer:   issuer,
		service:  service,
	}
}

func TestRegisterThenLogin(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	user, err := f.service.Register(ctx, testUserName, testUserEmail, testUserPassword)
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, testUserEmail, user.Email)

	signed, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)

	claims, err := f.issuer.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
	require.Equal(t, testUserEmail, claims.Email)
	require.Equal(t, testUserName, claims.Name)
}

func TestRegisterNeverStoresPlaintext(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, testUserName, testUserEmail, testUserPassword)
	require.NoError(t, err)

	stored, err := f.userRepo.GetByEmail(ctx, testUserEmail)
	require.NoError(t, err)
	require.NotEqual(t, testUserPassword, stored.PasswordHash)
	require.NotContains(t, stored.PasswordHash, testUserPassword)
}

func TestRegisterValidation(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, "", testUserEmail, testUserPassword)
	require.True(t, auth.IsValidationError(err))

	_, err = f.service.Register(ctx, testUserName, "not-an-email", testUserPassword)
	require.True(t, auth.IsValidationError(err))

	_, err = f.service.Register(ctx, testUserName, testUserEmail, "")
	require.True(t, auth.IsValidationError(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, testUserName, testUserEmail, testUserPassword)
	require.NoError(t, err)

	_, err = f.service.Register(ctx, "Other", testUserEmail, "otherpass1")
	require.ErrorIs(t, err, users.ErrDuplicateEmail)
	require.Equal(t, 1, f.userRepo.Count())
}

func TestRegisterDuplicateEmailConcurrent(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.Register(ctx, testUserName, testUserEmail, testUserPassword)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, users.ErrDuplicateEmail)
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, 1, f.userRepo.Count())
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, testUserName, testUserEmail, testUserPassword)
	require.NoError(t, err)

	_, unknownEmailErr := f.service.Login(ctx, "nobody@x.com", testUserPassword)
	_, wrongPasswordErr := f.service.Login(ctx, testUserEmail, "wrong")

	require.ErrorIs(t, unknownEmailErr, auth.ErrInvalidCredentials)
	require.ErrorIs(t, wrongPasswordErr, auth.ErrInvalidCredentials)
	require.Equal(t, unknownEmailErr.Error(), wrongPasswordErr.Error())
}

func TestLoginTokensDifferAcrossLogins(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, testUserName, testUserEmail, testUserPassword)
	require.NoError(t, err)

	token1, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)
	token2, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)

	_, err = f.issuer.Verify(token1)
	require.NoError(t, err)
	_, err = f.issuer.Verify(token2)
	require.NoError(t, err)
}
