// Package session holds the single source of truth for "who is logged in":
// the authenticated user, the status of auth operations, and the last
// surfaced error. All state transitions are committed under a mutex with
// network and storage calls kept outside of it; downstream consumers are
// notified of user changes only after the state is committed.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/accountcli/internal/client/api"
	"github.com/dmitrijs2005/accountcli/internal/client/models"
	"github.com/dmitrijs2005/accountcli/internal/logging"
)

// TokenStorage is the slice of the storage layer the session store owns:
// the persisted bearer token. Token returns "" when none is stored.
type TokenStorage interface {
	Token(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Store is the session state container.
//
// Invariants: User() != nil implies Status() == StatusAuthenticated, and a
// missing persisted token implies User() == nil. A superseded register
// resolves as a silent no-op without touching status, user, or lastError.
type Store struct {
	client api.Client
	tokens TokenStorage
	log    logging.Logger

	mu           sync.Mutex
	status       Status
	user         *models.User
	lastError    string
	registerGen  uint64
	onUserChange []func(*models.User)
}

// NewStore creates a session store in StatusBootstrapping. Call Bootstrap
// once before rendering anything that depends on the session.
func NewStore(client api.Client, tokens TokenStorage, log logging.Logger) *Store {
	return &Store{
		client: client,
		tokens: tokens,
		log:    log.With("component", "session"),
		status: StatusBootstrapping,
	}
}

// Status returns the current authentication status.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// User returns the authenticated user, or nil. The returned value is never
// mutated by the store after being published.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// LastError returns the display message of the last surfaced failure, or "".
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// OnUserChange registers fn to run after every committed user change:
// login, register, logout, profile update. Callbacks run sequentially on
// the mutating goroutine, after the store state is already committed.
func (s *Store) OnUserChange(fn func(*models.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUserChange = append(s.onUserChange, fn)
}

// Bootstrap restores the session from persisted storage: no token means
// unauthenticated; with a token, a successful profile fetch authenticates.
// A failed fetch leaves the store unauthenticated but keeps the stored
// token in place, so a transient backend outage does not force a re-login.
// Bootstrap never fails; all errors are absorbed and logged.
func (s *Store) Bootstrap(ctx context.Context) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to read stored token", "error", err)
		token = ""
	}

	if token == "" {
		s.setStatus(StatusUnauthenticated)
		return
	}

	user, err := s.client.GetProfile(ctx)
	if err != nil {
		s.log.Warn(ctx, "profile fetch failed during bootstrap, keeping stored token", "error", err)
		s.setStatus(StatusUnauthenticated)
		return
	}

	s.commitUser(user)
	s.log.Info(ctx, "session restored", "email", user.Email)
}

// Register creates an account and authenticates. A newer Register call
// supersedes a still-outstanding one; the superseded call returns nil
// without mutating any state.
func (s *Store) Register(ctx context.Context, data models.RegisterData) error {
	gen := s.beginRegister()

	resp, err := s.client.Register(ctx, data)
	if err != nil {
		if errors.Is(err, api.ErrSuperseded) {
			s.log.Debug(ctx, "register superseded, discarding result")
			return nil
		}
		s.failRegister(gen, err)
		return err
	}
	if s.registerSuperseded(gen) {
		return nil
	}

	if err := s.tokens.SaveToken(ctx, resp.Token); err != nil {
		err = fmt.Errorf("failed to persist token: %w", err)
		s.failRegister(gen, err)
		return err
	}

	user, err := s.client.GetProfile(ctx)
	if err != nil {
		s.failRegister(gen, err)
		return err
	}
	if s.registerSuperseded(gen) {
		return nil
	}

	s.commitUser(user)
	s.log.Info(ctx, "registered", "email", user.Email)
	return nil
}

// Login authenticates with the given credentials. Unlike Register, repeated
// calls are not superseded; whichever resolves last wins.
func (s *Store) Login(ctx context.Context, credentials models.LoginData) error {
	s.setStatus(StatusAuthenticating)

	resp, err := s.client.Login(ctx, credentials)
	if err != nil {
		s.fail(err)
		return err
	}

	if err := s.tokens.SaveToken(ctx, resp.Token); err != nil {
		err = fmt.Errorf("failed to persist token: %w", err)
		s.fail(err)
		return err
	}

	user, err := s.client.GetProfile(ctx)
	if err != nil {
		s.fail(err)
		return err
	}

	s.commitUser(user)
	s.log.Info(ctx, "logged in", "email", user.Email)
	return nil
}

// Logout ends the session. The server call is best-effort: its failure is
// logged and absorbed, because logout must be unconditionally effective
// locally regardless of backend reachability.
func (s *Store) Logout(ctx context.Context) {
	if err := s.client.Logout(ctx); err != nil {
		s.log.Warn(ctx, "logout request failed", "error", err)
	}

	if err := s.tokens.ClearToken(ctx); err != nil {
		s.log.Error(ctx, "failed to clear stored token", "error", err)
	}

	s.commitLoggedOut()
	s.log.Info(ctx, "logged out")
}

// UpdateUserProfile pushes a partial profile update to the backend and, on
// success, re-fetches the canonical profile so the local user matches what
// the server actually stored.
func (s *Store) UpdateUserProfile(ctx context.Context, data models.UpdateProfileData) error {
	if _, err := s.client.UpdateProfile(ctx, data); err != nil {
		s.setLastError(err)
		return err
	}

	user, err := s.client.GetProfile(ctx)
	if err != nil {
		s.setLastError(err)
		return err
	}

	s.commitUser(user)
	s.log.Info(ctx, "profile updated", "email", user.Email)
	return nil
}

func (s *Store) beginRegister() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registerGen++
	s.status = StatusAuthenticating
	return s.registerGen
}

func (s *Store) registerSuperseded(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registerGen != gen
}

// failRegister records a register failure unless the call was superseded in
// the meantime, in which case the stale result is discarded.
func (s *Store) failRegister(gen uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.registerGen != gen {
		return
	}
	s.status = StatusError
	s.lastError = err.Error()
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusError
	s.lastError = err.Error()
}

func (s *Store) setLastError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err.Error()
}

func (s *Store) setStatus(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// commitUser publishes an authenticated user and notifies subscribers. The
// notification runs with the lock released, after the commit.
func (s *Store) commitUser(user *models.User) {
	s.mu.Lock()
	s.user = user
	s.status = StatusAuthenticated
	s.lastError = ""
	callbacks := append([]func(*models.User){}, s.onUserChange...)
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(user)
	}
}

func (s *Store) commitLoggedOut() {
	s.mu.Lock()
	s.user = nil
	s.status = StatusUnauthenticated
	s.lastError = ""
	callbacks := append([]func(*models.User){}, s.onUserChange...)
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(nil)
	}
}
