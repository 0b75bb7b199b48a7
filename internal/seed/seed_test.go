package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/baharkarakas/legion/internal/auth"
	"github.com/baharkarakas/legion/internal/models"
	repo "github.com/baharkarakas/legion/internal/repository"
	"github.com/baharkarakas/legion/internal/repository/filestore"
)

var hasher = auth.Hasher{Cost: bcrypt.MinCost}

func TestBundledSnapshot(t *testing.T) {
	snap, err := Bundled()
	require.NoError(t, err)
	require.NotEmpty(t, snap.Members)
	require.NotEmpty(t, snap.Workouts)
	require.NotEmpty(t, snap.Records)
	require.NotEmpty(t, snap.Users)

	roles := map[string]bool{}
	for _, u := range snap.Users {
		roles[u.Role] = true
	}
	require.True(t, roles[models.RoleCoach])
	require.True(t, roles[models.RoleAdmin])
}

func TestRunFillsOnlyEmptyCollections(t *testing.T) {
	ctx := context.Background()
	store, err := filestore.Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	_, err = store.Workouts().Create(ctx, models.Workout{ID: "custom", Name: "Custom"})
	require.NoError(t, err)

	snap, err := Bundled()
	require.NoError(t, err)
	res, err := Run(ctx, store, hasher, snap, nil)
	require.NoError(t, err)
	require.Equal(t, len(snap.Members), res.Members)
	require.Zero(t, res.Workouts)
	require.Equal(t, len(snap.Users), res.Users)
	require.Equal(t, len(snap.Records), res.Records)

	n, err := store.Workouts().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	recs, err := store.Records().List(ctx)
	require.NoError(t, err)
	for _, r := range recs {
		require.Equal(t, "/members/"+r.MemberID, r.Member)
	}

	users, err := store.Users().List(ctx)
	require.NoError(t, err)
	require.NotEqual(t, "password", users[0].PasswordHash)
	require.NoError(t, hasher.Verify("password", users[0].PasswordHash))

	// a second run writes nothing
	res, err = Run(ctx, store, hasher, snap, nil)
	require.NoError(t, err)
	require.Equal(t, Result{}, res)
}

func TestRunConflictLeavesStoreEmpty(t *testing.T) {
	ctx := context.Background()
	store, err := filestore.Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	snap, err := Bundled()
	require.NoError(t, err)
	snap.Members = append(snap.Members, snap.Members[0])

	_, err = Run(ctx, store, hasher, snap, nil)
	require.ErrorIs(t, err, repo.ErrConflict)

	for _, c := range []interface {
		Count(context.Context) (int, error)
	}{store.Members(), store.Workouts(), store.Users(), store.Records()} {
		n, err := c.Count(ctx)
		require.NoError(t, err)
		require.Zero(t, n)
	}
}
