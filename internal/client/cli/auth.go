package cli

import (
	"context"
	"fmt"
)

// Login prompts for credentials, submits them through the login view-model
// and shows the home screen once the login succeeds.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "-Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	a.login.SetUsername(username)
	a.login.SetPassword(password)

	err = a.login.PerformLogin(ctx)
	fmt.Fprintln(a.out, a.login.State().Status)
	if err != nil {
		return err
	}

	if a.login.ConsumeNavigation() {
		a.resetScreens()
		a.showHome(ctx)
	}
	return nil
}

// Logout always ends the local session, even when the server is unreachable.
func (a *App) Logout(ctx context.Context) error {
	a.home.Logout(ctx, func() {
		a.resetScreens()
		fmt.Fprintln(a.out, "logged out")
	})
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	s := a.store.Snapshot()
	if !s.Authenticated {
		fmt.Fprintln(a.out, "not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s)\n", s.Username, s.Role.DisplayName())
	return nil
}

// showHome prints the greeting and the service catalogue.
func (a *App) showHome(ctx context.Context) {
	s := a.home.Session()
	if a.isAdmin() {
		fmt.Fprintln(a.out, "== Administration panel ==")
	} else {
		fmt.Fprintln(a.out, "== Main panel ==")
	}
	role := "Client"
	if a.isAdmin() {
		role = "Administrator"
	}
	fmt.Fprintf(a.out, "welcome, %s (%s)\n", s.Username, role)

	if err := a.home.FetchServices(ctx); err != nil {
		fmt.Fprintln(a.out, a.home.State().Message)
		return
	}
	printServices(a.out, a.home.State().Items)
}

// resetScreens drops per-session screen state, the CLI's equivalent of
// clearing the navigation history.
func (a *App) resetScreens() {
	a.apptVM = nil
	a.lastList = nil
	a.clientsVM.CancelEditing()
	a.servicesVM.CancelEditing()
}
