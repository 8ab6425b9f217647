package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/useradmin/internal/client/seed"
	"github.com/dmitrijs2005/useradmin/internal/common"
)

func (a *App) Status(ctx context.Context) error {
	a.printf("API %s is %s (last check %s)\n",
		a.Config.ServerURL, a.Watcher.Mode(), formatTime(a.Watcher.LastCheck()))
	return nil
}

// Debug prints session and storage diagnostics.
func (a *App) Debug(ctx context.Context) error {
	token, err := a.Sessions.Token(ctx)
	if err != nil {
		return err
	}
	snapshot, err := a.Sessions.Identity(ctx)
	if err != nil {
		return err
	}
	count, err := a.Directory.Count(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "API URL:\t%s\n", a.Config.ServerURL)
	fmt.Fprintf(tw, "API status:\t%s\n", a.Watcher.Mode())
	fmt.Fprintf(tw, "Last source:\t%s\n", a.Dispatcher.LastSource())
	fmt.Fprintf(tw, "Database:\t%s\n", a.Config.DatabasePath)
	fmt.Fprintf(tw, "Token (%s):\t%s\n", common.TokenKey, present(token != ""))
	fmt.Fprintf(tw, "Identity (%s):\t%s\n", common.IdentityKey, present(snapshot != nil))
	fmt.Fprintf(tw, "Local users (%s):\t%d\n", common.UsersKey, count)
	return tw.Flush()
}

func present(ok bool) string {
	if ok {
		return "present"
	}
	return "absent"
}

// Reset restores the demo directory and ends the session.
func (a *App) Reset(ctx context.Context) error {
	ok, err := Confirm(a.in, "Replace the local directory with demo data and log out?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.printf("Cancelled\n")
		return nil
	}

	if err := seed.Reset(ctx, a.Directory, a.Sessions, a.Seeds); err != nil {
		return err
	}
	a.Session.Logout(ctx)
	a.printf("Local data reset, %d users restored\n", len(a.Seeds))
	return nil
}
