package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/visadesk/internal/common"
	"github.com/dmitrijs2005/visadesk/internal/models"
	"github.com/dmitrijs2005/visadesk/internal/records"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, password and name, creates the account and
// logs the new user in. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}

	u, err := a.store.Register(ctx, records.Registration{Email: email, Password: string(password), Name: name})
	if err != nil {
		return err
	}
	a.setUser(u)
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
	return nil
}

// Login prompts for credentials. On failure the current session, if any, is
// kept.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.store.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	a.setUser(u)
	fmt.Fprintf(a.out, "Logged in as %s\n", u.Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.store.Logout(ctx); err != nil {
		return err
	}
	a.user = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Whoami prints the session snapshot as stored.
func (a *App) Whoami(ctx context.Context) error {
	u, err := a.store.CurrentUser(ctx)
	if err != nil {
		return err
	}
	a.setUser(u)
	fmt.Fprintf(a.out, "%s <%s>, %d application(s)\n", u.Name, u.Email, len(u.Applications))
	for _, s := range u.Applications {
		fmt.Fprintf(a.out, "  %s  %s/%s  %s\n", s.ID, s.Destination, s.VisaType, s.Status)
	}
	return nil
}

// Profile prompts for each profile field; an empty answer keeps the value.
func (a *App) Profile(ctx context.Context) error {
	var patch models.ProfilePatch
	prompts := []struct {
		label string
		dst   **string
	}{
		{"Full name", &patch.FullName},
		{"Phone", &patch.Phone},
		{"Nationality", &patch.Nationality},
		{"Location", &patch.Location},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.label+" (empty to keep)", a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*p.dst = &v
		}
	}

	u, err := a.store.UpdateProfile(ctx, a.user.ID, patch)
	if err != nil {
		return err
	}
	a.setUser(u)
	fmt.Fprintln(a.out, "Profile updated")
	return nil
}

func (a *App) Password(ctx context.Context) error {
	password, err := getPassword("Enter new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.store.UpdatePassword(ctx, a.user.ID, string(password)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed")
	return nil
}

// DeleteAccount asks for the password again and removes the account with
// all of its records.
func (a *App) DeleteAccount(ctx context.Context) error {
	password, err := getPassword("Confirm with your password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.store.DeleteAccount(ctx, a.user.ID, string(password)); err != nil {
		return err
	}
	a.user = nil
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}
