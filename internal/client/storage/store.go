package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/accountcli/internal/client/models"
	"github.com/dmitrijs2005/accountcli/internal/dbx"
)

// Keys under which the durable client state lives. The token is owned by
// the session store, the snapshot by the profile store; nothing else may
// write them.
const (
	tokenKey   = "token"
	profileKey = "userProfile"
)

// Store exposes typed access to the persisted token and profile snapshot.
// It also satisfies api.TokenSource via Token.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) repo() Repository {
	return NewSQLiteRepository(s.db)
}

// Token returns the persisted session token, or "" when none is stored.
func (s *Store) Token(ctx context.Context) (string, error) {
	value, err := s.repo().Get(ctx, tokenKey)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

func (s *Store) SaveToken(ctx context.Context, token string) error {
	return s.repo().Set(ctx, tokenKey, []byte(token))
}

func (s *Store) ClearToken(ctx context.Context) error {
	return s.repo().Delete(ctx, tokenKey)
}

// LoadProfile returns the last persisted snapshot, or nil when none exists.
func (s *Store) LoadProfile(ctx context.Context) (*models.Profile, error) {
	value, err := s.repo().Get(ctx, profileKey)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	var p models.Profile
	if err := json.Unmarshal(value, &p); err != nil {
		return nil, fmt.Errorf("failed to decode stored profile: %w", err)
	}
	return &p, nil
}

func (s *Store) SaveProfile(ctx context.Context, p models.Profile) error {
	value, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return s.repo().Set(ctx, profileKey, value)
}

// Wipe removes all persisted client state in a single transaction.
func (s *Store) Wipe(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return NewSQLiteRepository(tx).Clear(ctx)
	})
}
