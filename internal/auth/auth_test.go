package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGeneratePairRoundTrip(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", "legion", time.Minute, time.Hour)

	pair, err := tm.GeneratePair("u-1", "coach")
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	require.WithinDuration(t, time.Now().Add(time.Minute), pair.AccessExp, 5*time.Second)

	claims, err := tm.ParseAccess(pair.Access)
	require.NoError(t, err)
	require.Equal(t, "u-1", claims.UserID)
	require.Equal(t, "coach", claims.Role)

	claims, err = tm.ParseRefresh(pair.Refresh)
	require.NoError(t, err)
	require.Equal(t, "u-1", claims.UserID)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", "legion", time.Minute, time.Hour)
	pair, err := tm.GeneratePair("u-1", "athlete")
	require.NoError(t, err)

	_, err = tm.ParseAccess(pair.Refresh)
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = tm.ParseRefresh(pair.Access)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredAndForeignTokensAreRejected(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", "legion", time.Minute, time.Hour)
	pair, err := tm.GeneratePair("u-1", "admin")
	require.NoError(t, err)

	tm.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = tm.ParseAccess(pair.Access)
	require.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokenManager("other-secret", "refresh-secret", "legion", time.Minute, time.Hour)
	foreign, err := other.GeneratePair("u-1", "admin")
	require.NoError(t, err)
	tm.now = time.Now
	_, err = tm.ParseAccess(foreign.Access)
	require.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer := NewTokenManager("access-secret", "refresh-secret", "someone-else", time.Minute, time.Hour)
	p2, err := wrongIssuer.GeneratePair("u-1", "admin")
	require.NoError(t, err)
	_, err = tm.ParseAccess(p2.Access)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestHasher(t *testing.T) {
	h := Hasher{Cost: bcrypt.MinCost}
	hash, err := h.Hash("password")
	require.NoError(t, err)
	require.NotEqual(t, "password", hash)
	require.NoError(t, h.Verify("password", hash))
	require.Error(t, h.Verify("wrong", hash))
}
