package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/client/models"
)

// fakeClient implements client.Client. Every call is counted; err, when
// set, is returned by every operation.
type fakeClient struct {
	err   error
	calls map[string]int

	loginRes *models.LoginResult
	me       *models.Identity
	page     *models.UserPage
	user     *models.User

	lastCreate models.CreateUserData
	lastUpdate models.UpdateUserData
}

func newFakeClient() *fakeClient {
	return &fakeClient{calls: map[string]int{}}
}

func unavailableClient() *fakeClient {
	c := newFakeClient()
	c.err = client.ErrUnavailable
	return c
}

func (f *fakeClient) Login(_ context.Context, _, _ string) (*models.LoginResult, error) {
	f.calls["Login"]++
	if f.err != nil {
		return nil, f.err
	}
	return f.loginRes, nil
}

func (f *fakeClient) CurrentUser(context.Context) (*models.Identity, error) {
	f.calls["CurrentUser"]++
	if f.err != nil {
		return nil, f.err
	}
	return f.me, nil
}

func (f *fakeClient) ListUsers(context.Context, models.ListFilter) (*models.UserPage, error) {
	f.calls["ListUsers"]++
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func (f *fakeClient) GetUser(context.Context, int64) (*models.User, error) {
	f.calls["GetUser"]++
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeClient) CreateUser(_ context.Context, d models.CreateUserData) (*models.User, error) {
	f.calls["CreateUser"]++
	f.lastCreate = d
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeClient) UpdateUser(_ context.Context, _ int64, d models.UpdateUserData) (*models.User, error) {
	f.calls["UpdateUser"]++
	f.lastUpdate = d
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeClient) DeleteUser(context.Context, int64) error {
	f.calls["DeleteUser"]++
	return f.err
}

func (f *fakeClient) Ping(context.Context) error {
	f.calls["Ping"]++
	return f.err
}

type fakeIssuer struct {
	err error
}

func (f fakeIssuer) Issue(identity *models.Identity, _ time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "tok-" + identity.LoginName, nil
}

type fakeSnapshot struct {
	id  *models.Identity
	err error
}

func (f fakeSnapshot) Identity(context.Context) (*models.Identity, error) {
	return f.id, f.err
}
