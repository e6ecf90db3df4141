package fakeuserrepo_test

import (
	"context"
	"sync"
	"testing"

	"github.com/reelnotes/reelnotes/users"
	fakeuserrepo "github.com/reelnotes/reelnotes/users/repofake"
	"github.com/stretchr/testify/require"
)

func TestCreateAndLookup(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	ctx := context.Background()

	user := &users.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEmpty(t, user.ID)

	byEmail, err := repo.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "ana@x.com", byID.Email)
}

func TestLookupMissing(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, users.ErrNotFound)

	_, err = repo.GetByID(ctx, "missing-id")
	require.ErrorIs(t, err, users.ErrNotFound)
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &users.User{Name: "Ana", Email: "ana@x.com"}))

	err := repo.Create(ctx, &users.User{Name: "Other", Email: "ana@x.com"})
	require.ErrorIs(t, err, users.ErrDuplicateEmail)
	require.Equal(t, 1, repo.Count())
}

func TestCreateConcurrentSameEmail(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	ctx := context.Background()

	const attempts = 16
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(ctx, &users.User{Name: "Ana", Email: "ana@x.com"})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, 1, repo.Count())
}

func TestStoredUserIsACopy(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	ctx := context.Background()

	user := &users.User{Name: "Ana", Email: "ana@x.com"}
	require.NoError(t, repo.Create(ctx, user))

	user.Name = "Mutated"

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana", stored.Name)
}
