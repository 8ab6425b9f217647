package services

import (
	"context"

	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/client/models"
)

// LocalDirectory is the local store as seen by the services.
type LocalDirectory interface {
	List(ctx context.Context, filter models.ListFilter) (*models.UserPage, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, data models.CreateUserData) (*models.User, error)
	Update(ctx context.Context, id int64, data models.UpdateUserData) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	Authenticate(ctx context.Context, login, password string) (*models.User, error)
}

// UserService is the directory CRUD surface used by the CLI.
//
// Create and Update validate their input before either backend sees it and
// return *common.ValidationError on failure. Delete of a missing id
// succeeds on the local store.
type UserService interface {
	List(ctx context.Context, filter models.ListFilter) (*models.UserPage, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, data models.CreateUserData) (*models.User, error)
	Update(ctx context.Context, id int64, data models.UpdateUserData) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	remote client.Client
	local  LocalDirectory
	d      *Dispatcher
}

func NewUserService(remote client.Client, local LocalDirectory, d *Dispatcher) UserService {
	return &userService{remote: remote, local: local, d: d}
}

func (s *userService) List(ctx context.Context, filter models.ListFilter) (*models.UserPage, error) {
	filter = filter.Normalized()
	return dispatch(ctx, s.d, "ListUsers",
		func(ctx context.Context) (*models.UserPage, error) { return s.remote.ListUsers(ctx, filter) },
		func(ctx context.Context) (*models.UserPage, error) { return s.local.List(ctx, filter) },
	)
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	return dispatch(ctx, s.d, "GetUser",
		func(ctx context.Context) (*models.User, error) { return s.remote.GetUser(ctx, id) },
		func(ctx context.Context) (*models.User, error) { return s.local.GetByID(ctx, id) },
	)
}

func (s *userService) Create(ctx context.Context, data models.CreateUserData) (*models.User, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return dispatch(ctx, s.d, "CreateUser",
		func(ctx context.Context) (*models.User, error) { return s.remote.CreateUser(ctx, data) },
		func(ctx context.Context) (*models.User, error) { return s.local.Create(ctx, data) },
	)
}

func (s *userService) Update(ctx context.Context, id int64, data models.UpdateUserData) (*models.User, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return dispatch(ctx, s.d, "UpdateUser",
		func(ctx context.Context) (*models.User, error) { return s.remote.UpdateUser(ctx, id, data) },
		func(ctx context.Context) (*models.User, error) { return s.local.Update(ctx, id, data) },
	)
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return dispatchErr(ctx, s.d, "DeleteUser",
		func(ctx context.Context) error { return s.remote.DeleteUser(ctx, id) },
		func(ctx context.Context) error { return s.local.Delete(ctx, id) },
	)
}
