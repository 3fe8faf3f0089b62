package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/phishshield/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/phishshield/internal/common"
	"github.com/dmitrijs2005/phishshield/internal/dbx"
	"github.com/golang-jwt/jwt/v5"
)

// TokenStore holds the single bearer credential of the client. Token returns
// "" when no credential is stored.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// MemoryTokenStore keeps the credential for the life of the process only.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Token(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStore) SetToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) ClearToken(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// PersistentTokenStore keeps the credential in the local metadata table so
// it survives restarts. The first read is cached; writes go through to the
// database, in one transaction with the save time, before the cache is
// updated.
type PersistentTokenStore struct {
	db   *sql.DB
	repo metadata.Repository
	now  func() time.Time

	mu     sync.Mutex
	loaded bool
	token  string
}

func NewPersistentTokenStore(db *sql.DB) *PersistentTokenStore {
	return &PersistentTokenStore{db: db, repo: metadata.NewSQLiteRepository(db), now: time.Now}
}

func (s *PersistentTokenStore) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.token, nil
	}

	v, err := s.repo.Get(ctx, common.AuthTokenKey)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return "", err
	}

	s.token = string(v)
	s.loaded = true
	return s.token, nil
}

func (s *PersistentTokenStore) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	savedAt := s.now().UTC().Format(time.RFC3339)
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.AuthTokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.AuthTokenSavedAtKey, []byte(savedAt))
	})
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	s.token = token
	s.loaded = true
	return nil
}

func (s *PersistentTokenStore) ClearToken(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.AuthTokenKey); err != nil {
			return err
		}
		return repo.Delete(ctx, common.AuthTokenSavedAtKey)
	})
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}

	s.token = ""
	s.loaded = true
	return nil
}

// SavedAt reports when the current credential was stored. The zero time is
// returned when nothing is stored.
func (s *PersistentTokenStore) SavedAt(ctx context.Context) (time.Time, error) {
	v, err := s.repo.Get(ctx, common.AuthTokenSavedAtKey)
	if errors.Is(err, common.ErrorNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, string(v))
}

// TokenExpired reports whether token is a JWT whose exp claim is before now.
// Opaque tokens and JWTs without exp are never considered expired; only the
// server can judge them. The signature is not verified.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time)
}
