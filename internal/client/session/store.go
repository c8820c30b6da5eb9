// Package session owns the current user of the shell: it restores the user
// from local storage at startup, signs users in and out, applies settings
// updates, and keeps the persisted record identical to the in-memory one.
//
// A Store is created once per process and handed to the components that
// need it; there is no package-level state.
//
// State machine
//
//	Unknown ──Initialize──▶ Authenticated | Unauthenticated
//	Unauthenticated ──Login/Signup──▶ Authenticated
//	Authenticated ──Logout──▶ Unauthenticated
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gesturetalk/internal/client/async"
	"github.com/dmitrijs2005/gesturetalk/internal/client/models"
	"github.com/dmitrijs2005/gesturetalk/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/gesturetalk/internal/common"
	"github.com/dmitrijs2005/gesturetalk/internal/logging"
)

type Store struct {
	repo   localstore.Repository
	auth   Authenticator
	logger logging.Logger
	key    string

	mu          sync.RWMutex
	user        *models.User
	initialized bool
	pending     int

	inflight sync.WaitGroup
}

func NewStore(repo localstore.Repository, auth Authenticator, logger logging.Logger) *Store {
	return &Store{
		repo:   repo,
		auth:   auth,
		logger: logger.With("component", "session"),
		key:    common.UserStorageKey,
	}
}

// CurrentUser returns a copy of the current user.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// IsLoading reports whether the initial read or a sign-in call is in flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return !s.initialized || s.pending > 0
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.stateLocked()
}

func (s *Store) stateLocked() State {
	switch {
	case s.user != nil:
		return StateAuthenticated
	case !s.initialized:
		return StateUnknown
	default:
		return StateUnauthenticated
	}
}

// Initialize restores the persisted user. A missing record leaves the
// session signed out. A malformed record is removed and treated as missing,
// unless a sign-in has already replaced it. A storage read failure is
// returned, but the session still ends up initialized and signed out. Calls
// after the first are no-ops.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.RLock()
	done := s.initialized
	s.mu.RUnlock()
	if done {
		return nil
	}

	restored, malformed, readErr := s.restore(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	before := s.stateLocked()
	// A sign-in that finished while the record was being read wins, and the
	// record it wrote must survive.
	switch {
	case s.user != nil:
	case restored != nil:
		s.user = restored
	case malformed:
		if err := s.repo.Delete(ctx, s.key); err != nil {
			s.logger.Error(ctx, "failed to remove malformed session", "error", err)
		}
	}
	s.initialized = true
	s.logTransition(ctx, before)

	if readErr != nil {
		return fmt.Errorf("session restore: %w", readErr)
	}
	return nil
}

// restore reads the persisted user. malformed reports a record that exists
// but cannot be used.
func (s *Store) restore(ctx context.Context) (user *models.User, malformed bool, err error) {
	raw, err := s.repo.Get(ctx, s.key)
	if err != nil {
		s.logger.Error(ctx, "failed to read persisted session", "error", err)
		return nil, false, err
	}
	if raw == nil {
		return nil, false, nil
	}

	u, err := decodeUser(raw)
	if err != nil {
		perr := &StorageParseError{Key: s.key, Err: err}
		s.logger.Warn(ctx, "discarding persisted session", "error", perr)
		return nil, true, nil
	}

	s.logger.Info(ctx, "session restored", "user_id", u.ID)
	return &u, false, nil
}

func decodeUser(raw []byte) (models.User, error) {
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return models.User{}, err
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Login signs in with email and password. The returned future resolves to
// the new current user, or to an *AuthError with prior state untouched.
//
// The call runs detached from ctx cancellation: a caller that stops waiting
// does not abort the sign-in.
func (s *Store) Login(ctx context.Context, email, password string) *async.Future[models.User] {
	s.beginLoading()
	return async.Go(context.WithoutCancel(ctx), func(ctx context.Context) (models.User, error) {
		defer s.endLoading()

		u, err := s.auth.Login(ctx, email, password)
		if err == nil {
			err = s.replaceUser(ctx, u)
		}
		if err != nil {
			s.logger.Warn(ctx, "login failed", "error", err)
			return models.User{}, &AuthError{Op: "login", Message: LoginFailedMessage, Err: err}
		}

		s.logger.Info(ctx, "logged in", "user_id", u.ID)
		return u, nil
	})
}

// Signup creates a user from req and makes it current. Failure resolves to
// an *AuthError.
func (s *Store) Signup(ctx context.Context, req SignupRequest) *async.Future[models.User] {
	s.beginLoading()
	return async.Go(context.WithoutCancel(ctx), func(ctx context.Context) (models.User, error) {
		defer s.endLoading()

		u, err := s.auth.Signup(ctx, req)
		if err == nil {
			err = s.replaceUser(ctx, u)
		}
		if err != nil {
			s.logger.Warn(ctx, "signup failed", "error", err)
			return models.User{}, &AuthError{Op: "signup", Message: SignupFailedMessage, Err: err}
		}

		s.logger.Info(ctx, "signed up", "user_id", u.ID)
		return u, nil
	})
}

// Logout clears the current user and removes the persisted record. It is
// idempotent. The in-memory user is cleared even when the removal fails;
// that failure is logged and returned.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.stateLocked()
	s.user = nil
	err := s.repo.Delete(ctx, s.key)
	s.logTransition(ctx, before)

	if err != nil {
		s.logger.Error(ctx, "failed to remove persisted session", "error", err)
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// UpdateUser applies patch to the current user and persists the result.
// With no current user it does nothing and reports ok=false. An empty patch
// writes nothing. A patch that would leave an invalid user is rejected, and
// when the write fails the current user is left unchanged.
func (s *Store) UpdateUser(ctx context.Context, patch models.UserPatch) (models.User, bool, error) {
	if err := patch.Validate(); err != nil {
		return models.User{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return models.User{}, false, nil
	}
	if patch.IsEmpty() {
		return *s.user, true, nil
	}

	next := models.ApplyPatch(*s.user, patch)
	if err := next.Validate(); err != nil {
		return *s.user, true, err
	}
	if err := s.persistLocked(ctx, next); err != nil {
		return *s.user, true, err
	}
	s.user = &next

	s.logger.Debug(ctx, "user updated", "user_id", next.ID)
	return next, true, nil
}

func (s *Store) replaceUser(ctx context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.stateLocked()
	if err := s.persistLocked(ctx, u); err != nil {
		return err
	}
	s.user = &u
	s.logTransition(ctx, before)
	return nil
}

// persistLocked writes u to storage. Callers hold s.mu; storage is written
// before memory so both stay equal when the write fails.
func (s *Store) persistLocked(ctx context.Context, u models.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.repo.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

func (s *Store) beginLoading() {
	s.inflight.Add(1)
	s.mu.Lock()
	s.pending++
	s.mu.Unlock()
}

func (s *Store) endLoading() {
	s.mu.Lock()
	s.pending--
	s.mu.Unlock()
	s.inflight.Done()
}

// Wait blocks until every sign-in call started so far has finished, or ctx
// ends. Sign-ins outlive the requests that start them, so storage must stay
// open until Wait returns.
func (s *Store) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) logTransition(ctx context.Context, before State) {
	if after := s.stateLocked(); after != before {
		s.logger.Info(ctx, "session state changed", "from", before.String(), "to", after.String())
	}
}

// IsAuthError reports whether err carries an *AuthError and returns it.
func IsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
