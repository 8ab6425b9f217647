// Package sessions persists the current session: the token and, for the
// local fallback path, a snapshot of the authenticated identity.
package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/client/repositories/storage"
	"github.com/dmitrijs2005/useradmin/internal/common"
	"github.com/dmitrijs2005/useradmin/internal/dbx"
)

type Store struct {
	repo   storage.Repository
	atomic func(ctx context.Context, fn func(storage.Repository) error) error
}

// NewStore wraps any storage repository. Save and Clear are not atomic.
func NewStore(repo storage.Repository) *Store {
	return &Store{
		repo: repo,
		atomic: func(ctx context.Context, fn func(storage.Repository) error) error {
			return fn(repo)
		},
	}
}

// NewSQLiteStore writes token and snapshot in a single transaction.
func NewSQLiteStore(db *sql.DB) *Store {
	return &Store{
		repo: storage.NewSQLiteRepository(db),
		atomic: func(ctx context.Context, fn func(storage.Repository) error) error {
			return dbx.WithTx(ctx, db, func(tx dbx.DBTX) error {
				return fn(storage.NewSQLiteRepository(tx))
			})
		},
	}
}

// Token returns the persisted token or "" when there is none.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, _, err := s.repo.Get(ctx, common.TokenKey)
	return token, err
}

// Identity returns the persisted snapshot or nil when there is none.
func (s *Store) Identity(ctx context.Context) (*models.Identity, error) {
	raw, ok, err := s.repo.Get(ctx, common.IdentityKey)
	if err != nil || !ok {
		return nil, err
	}
	var id models.Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		return nil, fmt.Errorf("decode %s: %w", common.IdentityKey, err)
	}
	return &id, nil
}

func (s *Store) Save(ctx context.Context, token string, identity *models.Identity) error {
	b, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode %s: %w", common.IdentityKey, err)
	}
	return s.atomic(ctx, func(r storage.Repository) error {
		if err := r.Set(ctx, common.TokenKey, token); err != nil {
			return err
		}
		return r.Set(ctx, common.IdentityKey, string(b))
	})
}

func (s *Store) Clear(ctx context.Context) error {
	return s.atomic(ctx, func(r storage.Repository) error {
		if err := r.Delete(ctx, common.TokenKey); err != nil {
			return err
		}
		return r.Delete(ctx, common.IdentityKey)
	})
}
