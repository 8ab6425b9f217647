// Package session owns the authenticated identity of the running client.
// It is created once at startup, restored from persisted state, and
// passed to whatever needs to know who is logged in.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/useradmin/internal/auth"
	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/client/services"
	"github.com/dmitrijs2005/useradmin/internal/common"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

// Store persists the session token and identity snapshot.
type Store interface {
	Token(ctx context.Context) (string, error)
	Identity(ctx context.Context) (*models.Identity, error)
	Save(ctx context.Context, token string, identity *models.Identity) error
	Clear(ctx context.Context) error
}

// TokenValidator checks tokens minted by the local fallback login.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

type Manager struct {
	auth   services.AuthService
	store  Store
	tokens TokenValidator
	log    logging.Logger

	mu       sync.RWMutex
	identity *models.Identity
}

func NewManager(authSvc services.AuthService, store Store, tokens TokenValidator, log logging.Logger) *Manager {
	return &Manager{auth: authSvc, store: store, tokens: tokens, log: log}
}

// Login authenticates and persists the session. A rejected login returns
// (nil, nil); errors are reserved for failures such as storage problems.
func (m *Manager) Login(ctx context.Context, login, password string) (*models.Identity, error) {
	res, err := m.auth.Login(ctx, login, password)
	if errors.Is(err, common.ErrInvalidCredentials) {
		m.log.Info(ctx, "login rejected", "login", login)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(ctx, res.Token, res.User); err != nil {
		return nil, err
	}
	m.setIdentity(res.User)
	m.log.Info(ctx, "logged in", "login", res.User.LoginName, "local", IsLocalToken(res.Token))
	return res.User, nil
}

// Restore rebuilds the identity from persisted state. Local tokens are
// checked for expiry and restored from the snapshot; other tokens are
// confirmed with the current-user call. Any failure clears the persisted
// session and yields (nil, nil).
func (m *Manager) Restore(ctx context.Context) (*models.Identity, error) {
	id, err := m.restore(ctx)
	if err != nil || id == nil {
		if err != nil {
			m.log.Info(ctx, "session not restored", "reason", err)
		}
		m.Logout(ctx)
		return nil, nil
	}
	m.setIdentity(id)
	return id, nil
}

func (m *Manager) restore(ctx context.Context) (*models.Identity, error) {
	token, err := m.store.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	if IsLocalToken(token) {
		if _, err := m.tokens.Validate(strings.TrimPrefix(token, common.LocalTokenPrefix)); err != nil {
			return nil, err
		}
		id, err := m.store.Identity(ctx)
		if err != nil {
			return nil, err
		}
		if id == nil {
			return nil, common.ErrInvalidToken
		}
		return id, nil
	}

	id, err := m.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.store.Save(ctx, token, id); err != nil {
		return nil, err
	}
	return id, nil
}

// Logout forgets the session. It never fails; storage errors are logged.
func (m *Manager) Logout(ctx context.Context) {
	m.setIdentity(nil)
	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "clear session", "error", err)
	}
}

func (m *Manager) Identity() *models.Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.identity == nil {
		return nil
	}
	id := *m.identity
	return &id
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.identity != nil
}

func (m *Manager) IsSuperUser() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.identity != nil && m.identity.Role == models.RoleSuperUser
}

func (m *Manager) setIdentity(id *models.Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.identity = id
}

// IsLocalToken reports whether token was issued by the local fallback login.
func IsLocalToken(token string) bool {
	return strings.HasPrefix(token, common.LocalTokenPrefix)
}
