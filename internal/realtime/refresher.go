package realtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/logger"
)

// ErrSignedOut is returned when an operation runs on a signed-out refresher
var ErrSignedOut = errors.New("refresher is signed out")

// TokenSource obtains a fresh access token for the realtime channel
type TokenSource func(ctx context.Context) (string, error)

const (
	defaultRefreshMargin = 5 * time.Minute
	minRetryBackoff      = time.Second
	maxRetryBackoff      = time.Minute
)

// Refresher keeps a realtime session authenticated across token expiry and
// transport reconnects. It owns the renewal timer: Authenticate schedules a
// refresh at expiry minus the margin, OnReconnect re-runs authentication with
// the current token, and SignOut cancels everything without destroying the
// object so a later Authenticate can reuse it.
//
// With a nil TokenSource the refresher cannot renew by itself: it only
// tracks the credential and its Deadline. Server-held dashboard sessions
// run in this mode, since only the client can mint a fresh token.
type Refresher struct {
	source TokenSource
	margin time.Duration
	log    *logger.Logger

	mu        sync.Mutex
	token     string
	timer     *time.Timer
	backoff   time.Duration
	signedOut bool

	// now is stubbed in tests
	now func() time.Time
}

// NewRefresher creates a new Refresher. A non-positive margin falls back to
// the 5 minute default.
func NewRefresher(source TokenSource, margin time.Duration, log *logger.Logger) *Refresher {
	if margin <= 0 {
		margin = defaultRefreshMargin
	}
	return &Refresher{
		source:    source,
		margin:    margin,
		log:       log,
		backoff:   minRetryBackoff,
		signedOut: true,
		now:       time.Now,
	}
}

// Authenticate installs a token and schedules its renewal. The expiry is
// read from the token's exp claim without signature verification; the server
// verifies signatures, the refresher only needs the deadline.
func (r *Refresher) Authenticate(token string) error {
	expiry, err := tokenExpiry(token)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.token = token
	r.signedOut = false
	r.backoff = minRetryBackoff
	r.scheduleLocked(expiry)
	return nil
}

// scheduleLocked arms the renewal timer. The previous timer is always
// cleared first so at most one renewal is ever pending. Without a source
// there is nothing to renew with, so no timer is armed.
func (r *Refresher) scheduleLocked(expiry time.Time) {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if r.source == nil {
		return
	}

	delay := expiry.Add(-r.margin).Sub(r.now())
	if delay < 0 {
		delay = 0
	}
	r.timer = time.AfterFunc(delay, r.refresh)
}

// refresh fetches a new token and re-authenticates. Failures retry with
// exponential backoff until SignOut or a success resets the cycle.
func (r *Refresher) refresh() {
	r.mu.Lock()
	if r.signedOut {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	token, err := r.source(ctx)
	cancel()

	if err == nil {
		if err = r.Authenticate(token); err == nil {
			return
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.signedOut {
		return
	}

	r.log.Warn("token refresh failed, retrying",
		zap.Duration("backoff", r.backoff),
		zap.Error(err))

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.backoff, r.refresh)
	r.backoff *= 2
	if r.backoff > maxRetryBackoff {
		r.backoff = maxRetryBackoff
	}
}

// OnReconnect re-runs authentication after a transport reconnect. If the
// current token already expired while disconnected, a fresh one is fetched.
func (r *Refresher) OnReconnect(ctx context.Context) error {
	r.mu.Lock()
	if r.signedOut {
		r.mu.Unlock()
		return ErrSignedOut
	}
	token := r.token
	r.mu.Unlock()

	expiry, err := tokenExpiry(token)
	if err == nil && expiry.After(r.now().Add(r.margin)) {
		return r.Authenticate(token)
	}

	if r.source == nil {
		return errors.New("token expiring and no token source configured")
	}
	token, err = r.source(ctx)
	if err != nil {
		return fmt.Errorf("fetch token on reconnect: %w", err)
	}
	return r.Authenticate(token)
}

// Deadline reports when the current credential expires. ok is false when
// the refresher is signed out.
func (r *Refresher) Deadline() (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.signedOut {
		return time.Time{}, false
	}
	expiry, err := tokenExpiry(r.token)
	if err != nil {
		return time.Time{}, false
	}
	return expiry, true
}

// Token returns the current token, or "" when signed out
func (r *Refresher) Token() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.signedOut {
		return ""
	}
	return r.token
}

// SignOut cancels the pending renewal and clears the session. The refresher
// stays usable: a later Authenticate starts a fresh cycle.
func (r *Refresher) SignOut() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.token = ""
	r.signedOut = true
	r.backoff = minRetryBackoff
}

// tokenExpiry reads the exp claim of a JWT without verifying its signature
func tokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, errors.New("token has no expiry claim")
	}
	return exp.Time, nil
}
