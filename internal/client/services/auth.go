package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/common"
)

// TokenIssuer mints tokens for sessions opened by the local fallback login.
type TokenIssuer interface {
	Issue(identity *models.Identity, ttl time.Duration) (string, error)
}

// SnapshotSource yields the persisted identity snapshot.
type SnapshotSource interface {
	Identity(ctx context.Context) (*models.Identity, error)
}

// AuthService authenticates against the remote API with a local fallback.
//
//   - Login returns common.ErrInvalidCredentials for any rejection. The
//     local path only admits active super users and issues tokens prefixed
//     with common.LocalTokenPrefix.
//   - CurrentUser asks the API for the token's owner and falls back to the
//     persisted snapshot when the API is unreachable.
//   - Ping probes the API's health endpoint.
type AuthService interface {
	Login(ctx context.Context, login, password string) (*models.LoginResult, error)
	CurrentUser(ctx context.Context) (*models.Identity, error)
	Ping(ctx context.Context) error
}

type authService struct {
	remote   client.Client
	local    LocalDirectory
	snapshot SnapshotSource
	tokens   TokenIssuer
	ttl      time.Duration
	d        *Dispatcher
}

func NewAuthService(remote client.Client, local LocalDirectory, snapshot SnapshotSource,
	tokens TokenIssuer, ttl time.Duration, d *Dispatcher) AuthService {
	return &authService{remote: remote, local: local, snapshot: snapshot, tokens: tokens, ttl: ttl, d: d}
}

func (a *authService) Login(ctx context.Context, login, password string) (*models.LoginResult, error) {
	return dispatch(ctx, a.d, "Login",
		func(ctx context.Context) (*models.LoginResult, error) { return a.remote.Login(ctx, login, password) },
		func(ctx context.Context) (*models.LoginResult, error) { return a.localLogin(ctx, login, password) },
	)
}

func (a *authService) localLogin(ctx context.Context, login, password string) (*models.LoginResult, error) {
	u, err := a.local.Authenticate(ctx, login, password)
	if err != nil {
		return nil, err
	}
	if u.Role != models.RoleSuperUser {
		return nil, fmt.Errorf("%w: local login requires a super user", common.ErrInvalidCredentials)
	}

	identity := u.Identity()
	token, err := a.tokens.Issue(identity, a.ttl)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &models.LoginResult{User: identity, Token: common.LocalTokenPrefix + token}, nil
}

func (a *authService) CurrentUser(ctx context.Context) (*models.Identity, error) {
	return dispatch(ctx, a.d, "CurrentUser",
		a.remote.CurrentUser,
		func(ctx context.Context) (*models.Identity, error) {
			id, err := a.snapshot.Identity(ctx)
			if err != nil {
				return nil, err
			}
			if id == nil {
				return nil, common.ErrInvalidToken
			}
			return id, nil
		},
	)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.remote.Ping(ctx)
}
