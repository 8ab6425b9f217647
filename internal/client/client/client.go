package client

import (
	"context"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
)

// Client is the remote directory API.
type Client interface {
	Login(ctx context.Context, login, password string) (*models.LoginResult, error)
	CurrentUser(ctx context.Context) (*models.Identity, error)
	ListUsers(ctx context.Context, filter models.ListFilter) (*models.UserPage, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, data models.CreateUserData) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, data models.UpdateUserData) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// TokenSource supplies the bearer token attached to requests. An empty
// token means the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
