package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/useradmin/internal/client/session"
)

// Indirections over the interactive helpers, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var errAccessDenied = errors.New("this console is restricted to super users")

// requireSuperUser gates directory commands.
func (a *App) requireSuperUser() error {
	if !a.Session.IsAuthenticated() {
		return errors.New("not logged in, use 'login' first")
	}
	if !a.Session.IsSuperUser() {
		return errAccessDenied
	}
	return nil
}

func (a *App) Login(ctx context.Context) error {
	if id := a.Session.Identity(); id != nil {
		a.printf("Already logged in as %s, use 'logout' first\n", id.LoginName)
		return nil
	}

	login, err := getSimpleText(a.in, "Login", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.in, "Password", a.out)
	if err != nil {
		return err
	}

	id, err := a.Session.Login(ctx, login, password)
	if err != nil {
		return err
	}
	if id == nil {
		a.printf("Invalid credentials or inactive account\n")
		return nil
	}

	a.printf("Logged in as %s (%s) via %s API\n", id.DisplayName, id.Role, a.Dispatcher.LastSource())
	if !a.Session.IsSuperUser() {
		a.printf("Note: %s\n", errAccessDenied)
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.Session.Logout(ctx)
	a.printf("Logged out\n")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	id := a.Session.Identity()
	if id == nil {
		a.printf("Not logged in\n")
		return nil
	}
	token, err := a.Sessions.Token(ctx)
	if err != nil {
		return err
	}
	kind := "remote"
	if session.IsLocalToken(token) {
		kind = "local"
	}
	a.printf("%s <%s> login=%s role=%s company=%d session=%s\n",
		id.DisplayName, id.Email, id.LoginName, id.Role, id.CompanyID, kind)
	return nil
}
