package cli

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/visadesk/internal/models"
)

// Apply prompts for a new application and files it as pending.
func (a *App) Apply(ctx context.Context) error {
	var in models.ApplicationInput
	var err error
	if in.Destination, err = getSimpleText(a.reader, "Destination country", a.out); err != nil {
		return err
	}
	if in.VisaType, err = getSimpleText(a.reader, "Visa type", a.out); err != nil {
		return err
	}
	if in.Purpose, err = getSimpleText(a.reader, "Purpose of travel", a.out); err != nil {
		return err
	}
	if in.Fields, err = GetFields(a.reader, a.out); err != nil {
		return err
	}

	app, err := a.store.AddApplication(ctx, a.user.ID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Application %s submitted (%s)\n", app.ID, app.Status)
	return nil
}

// Apps lists the user's applications, newest first.
func (a *App) Apps(ctx context.Context) error {
	apps, err := a.store.ListApplications(ctx, a.user.ID)
	if err != nil {
		return err
	}
	if len(apps) == 0 {
		fmt.Fprintln(a.out, "No applications yet")
		return nil
	}
	slices.SortStableFunc(apps, func(x, y models.Application) int {
		return cmp.Compare(y.CreatedAt.UnixNano(), x.CreatedAt.UnixNano())
	})
	for _, app := range apps {
		fmt.Fprintf(a.out, "%s  %-12s %-10s %-9s %s\n",
			app.ID, app.Destination, app.VisaType, app.Status, app.CreatedAt.Format("2006-01-02"))
		if app.AdminNotes != "" {
			fmt.Fprintf(a.out, "    notes: %s\n", app.AdminNotes)
		}
	}
	return nil
}

// Update edits one of the user's applications; empty answers keep values.
func (a *App) Update(ctx context.Context, id string) error {
	var patch models.ApplicationPatch
	for _, p := range []struct {
		label string
		dst   **string
	}{
		{"Destination country (empty to keep)", &patch.Destination},
		{"Visa type (empty to keep)", &patch.VisaType},
		{"Purpose of travel (empty to keep)", &patch.Purpose},
	} {
		v, err := getSimpleText(a.reader, p.label, a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*p.dst = &v
		}
	}
	fields, err := GetFields(a.reader, a.out)
	if err != nil {
		return err
	}
	patch.Fields = fields

	app, err := a.store.UpdateApplication(ctx, a.user.ID, id, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Application %s updated\n", app.ID)
	return nil
}

func (a *App) Withdraw(ctx context.Context, id string) error {
	if err := a.store.DeleteApplication(ctx, a.user.ID, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Application %s withdrawn\n", id)
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	s, err := a.store.ApplicationStats(ctx, a.user.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "total %d: pending %d, approved %d, rejected %d, draft %d\n",
		s.Total, s.Pending, s.Approved, s.Rejected, s.Draft)
	return nil
}

// SetStatus is the administrative command behind approve and reject.
func (a *App) SetStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	notes, err := getSimpleText(a.reader, "Admin notes (optional)", a.out)
	if err != nil {
		return err
	}
	app, err := a.store.SetApplicationStatus(ctx, id, status, notes)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Application %s is now %s\n", app.ID, app.Status)
	return nil
}
