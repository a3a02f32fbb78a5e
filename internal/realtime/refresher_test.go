package realtime

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/logger"
)

// signedToken builds a real JWT whose exp claim is ttl from now. The
// refresher never verifies signatures, so any key works.
func signedToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": jwt.NewNumericDate(time.Now().Add(ttl)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func countingSource(t *testing.T, calls *atomic.Int32, ttl time.Duration) TokenSource {
	return func(_ context.Context) (string, error) {
		calls.Add(1)
		return signedToken(t, ttl), nil
	}
}

func TestRefresher_Authenticate(t *testing.T) {
	var calls atomic.Int32
	r := NewRefresher(countingSource(t, &calls, time.Hour), 5*time.Minute, logger.Get())

	token := signedToken(t, time.Hour)
	require.NoError(t, r.Authenticate(token))
	assert.Equal(t, token, r.Token())
	assert.Equal(t, int32(0), calls.Load(), "no refresh needed while token is fresh")
}

func TestRefresher_Authenticate_RejectsTokenWithoutExpiry(t *testing.T) {
	r := NewRefresher(nil, time.Minute, logger.Get())

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
	signed, err := noExpiry.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	assert.Error(t, r.Authenticate(signed))
	assert.Error(t, r.Authenticate("not-a-jwt"))
	assert.Empty(t, r.Token())
}

func TestRefresher_Deadline(t *testing.T) {
	r := NewRefresher(nil, time.Minute, logger.Get())

	_, ok := r.Deadline()
	assert.False(t, ok, "signed out: no deadline")

	require.NoError(t, r.Authenticate(signedToken(t, time.Hour)))
	deadline, ok := r.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Hour), deadline, 5*time.Second)

	r.SignOut()
	_, ok = r.Deadline()
	assert.False(t, ok)
}

func TestRefresher_NilSourceTracksWithoutRenewing(t *testing.T) {
	r := NewRefresher(nil, 50*time.Millisecond, logger.Get())

	token := signedToken(t, 100*time.Millisecond)
	require.NoError(t, r.Authenticate(token))

	// No source: expiry passes without a renewal attempt (or a panic) and
	// the credential is simply kept as-is
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, token, r.Token())

	// Reconnect with a near-expired token cannot self-heal either
	assert.Error(t, r.OnReconnect(context.Background()))
}

func TestRefresher_RefreshesBeforeExpiry(t *testing.T) {
	var calls atomic.Int32
	r := NewRefresher(countingSource(t, &calls, time.Hour), 100*time.Millisecond, logger.Get())

	// Expires in 250ms, margin 100ms: renewal due around 150ms
	old := signedToken(t, 250*time.Millisecond)
	require.NoError(t, r.Authenticate(old))

	require.Eventually(t, func() bool {
		return calls.Load() == 1 && r.Token() != old
	}, time.Second, 10*time.Millisecond, "token should have been renewed before expiry")
}

func TestRefresher_ReauthenticateClearsPendingTimer(t *testing.T) {
	var calls atomic.Int32
	r := NewRefresher(countingSource(t, &calls, time.Hour), 100*time.Millisecond, logger.Get())

	// First token would trigger a refresh at ~100ms
	require.NoError(t, r.Authenticate(signedToken(t, 200*time.Millisecond)))
	// Re-authenticating with a long-lived token must cancel that timer
	fresh := signedToken(t, time.Hour)
	require.NoError(t, r.Authenticate(fresh))

	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load(), "stale timer fired after re-authentication")
	assert.Equal(t, fresh, r.Token())
}

func TestRefresher_SignOutCancelsRenewal(t *testing.T) {
	var calls atomic.Int32
	r := NewRefresher(countingSource(t, &calls, time.Hour), 100*time.Millisecond, logger.Get())

	require.NoError(t, r.Authenticate(signedToken(t, 150*time.Millisecond)))
	r.SignOut()

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load(), "renewal ran after sign-out")
	assert.Empty(t, r.Token())

	// The object stays usable after sign-out
	require.NoError(t, r.Authenticate(signedToken(t, time.Hour)))
	assert.NotEmpty(t, r.Token())
}

func TestRefresher_OnReconnect(t *testing.T) {
	var calls atomic.Int32
	r := NewRefresher(countingSource(t, &calls, time.Hour), 100*time.Millisecond, logger.Get())

	// Signed out: reconnect has nothing to re-authenticate
	assert.ErrorIs(t, r.OnReconnect(context.Background()), ErrSignedOut)

	// Current token still valid: reused without hitting the source
	valid := signedToken(t, time.Hour)
	require.NoError(t, r.Authenticate(valid))
	require.NoError(t, r.OnReconnect(context.Background()))
	assert.Equal(t, valid, r.Token())
	assert.Equal(t, int32(0), calls.Load())

	// Token expiring within the margin: a fresh one is fetched
	require.NoError(t, r.Authenticate(signedToken(t, 50*time.Millisecond)))
	require.NoError(t, r.OnReconnect(context.Background()))
	assert.Equal(t, int32(1), calls.Load())
	assert.NotEmpty(t, r.Token())
}

func TestRefresher_OnReconnect_SourceFailure(t *testing.T) {
	failing := func(_ context.Context) (string, error) {
		return "", errors.New("token endpoint down")
	}
	r := NewRefresher(failing, 10*time.Minute, logger.Get())

	// Token inside the margin forces a source call, which fails
	require.NoError(t, r.Authenticate(signedToken(t, time.Minute)))
	assert.Error(t, r.OnReconnect(context.Background()))
}

func TestRefresher_RetriesWithBackoffOnFailure(t *testing.T) {
	var calls atomic.Int32
	failing := func(_ context.Context) (string, error) {
		calls.Add(1)
		return "", errors.New("token endpoint down")
	}
	r := NewRefresher(failing, 100*time.Millisecond, logger.Get())

	old := signedToken(t, 50*time.Millisecond)
	require.NoError(t, r.Authenticate(old))

	// First attempt fires immediately (already inside the margin); the retry
	// waits for the backoff floor, so exactly one call lands quickly.
	require.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, 10*time.Millisecond)

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "retry must wait out the backoff")
	assert.Equal(t, old, r.Token(), "failed refresh keeps the old token")

	r.SignOut()
}
