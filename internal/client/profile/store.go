// Package profile maintains the editable, persisted profile snapshot,
// reconciled against the session's authenticated user. When a user is
// present the profile is derived from it and written through to storage;
// when there is none, the last persisted snapshot serves as the fallback.
package profile

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/accountcli/internal/client/models"
	"github.com/dmitrijs2005/accountcli/internal/logging"
)

// UserSource exposes the current authenticated user; the session store
// implements it.
type UserSource interface {
	User() *models.User
}

// SnapshotStorage is the slice of the storage layer the profile store owns:
// the persisted profile snapshot. LoadProfile returns nil when none exists.
type SnapshotStorage interface {
	LoadProfile(ctx context.Context) (*models.Profile, error)
	SaveProfile(ctx context.Context, p models.Profile) error
}

// Store is the profile state container. It starts in the loading state
// until the first Refresh resolves.
type Store struct {
	users     UserSource
	snapshots SnapshotStorage
	log       logging.Logger

	mu      sync.Mutex
	loading bool
	profile *models.Profile
}

func NewStore(users UserSource, snapshots SnapshotStorage, log logging.Logger) *Store {
	return &Store{
		users:     users,
		snapshots: snapshots,
		log:       log.With("component", "profile"),
		loading:   true,
	}
}

// Profile returns the current profile, or nil when none is known yet. The
// returned value is never mutated by the store after being published.
func (s *Store) Profile() *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Loading reports whether the store is still resolving its initial state.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Refresh reconciles the profile with the session. With an authenticated
// user the profile is derived from it (missing phone becomes "", missing
// picture becomes the placeholder) and persisted; without one the last
// persisted snapshot is loaded, or nil if never persisted. The transient
// password field is always cleared. Errors are absorbed and logged: a
// failed snapshot write still publishes the derived profile, and a failed
// load leaves the current profile in place.
func (s *Store) Refresh(ctx context.Context) {
	defer s.setLoading(false)

	if user := s.users.User(); user != nil {
		derived := models.ProfileFromUser(*user)
		s.setProfile(&derived)
		if err := s.snapshots.SaveProfile(ctx, derived); err != nil {
			s.log.Error(ctx, "failed to persist profile snapshot", "error", err)
		}
		return
	}

	stored, err := s.snapshots.LoadProfile(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to load stored profile", "error", err)
		return
	}
	if stored != nil {
		stored.Password = ""
	}
	s.setProfile(stored)
}

// Update merges the patch onto the current profile (or onto a fresh default
// profile if none exists), publishes the result, and writes it through to
// storage. A failed write is returned to the caller but does not revert the
// in-memory update: the UI stays responsive even when storage misbehaves.
func (s *Store) Update(ctx context.Context, patch models.UpdateProfileData) error {
	s.mu.Lock()
	base := models.DefaultProfile()
	if s.profile != nil {
		base = *s.profile
	}
	merged := base.Merge(patch)
	s.profile = &merged
	s.loading = false
	s.mu.Unlock()

	if err := s.snapshots.SaveProfile(ctx, merged); err != nil {
		s.log.Error(ctx, "failed to persist profile", "error", err)
		return fmt.Errorf("failed to persist profile: %w", err)
	}
	return nil
}

func (s *Store) setProfile(p *models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}
