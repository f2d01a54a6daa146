package records

import (
	"context"
	"maps"
	"strings"
	"time"

	"github.com/dmitrijs2005/visadesk/internal/common"
	"github.com/dmitrijs2005/visadesk/internal/kv"
	"github.com/dmitrijs2005/visadesk/internal/models"
)

func parseStatus(st models.ApplicationStatus) (models.ApplicationStatus, error) {
	parsed, err := models.ParseStatus(string(st))
	if err != nil {
		return "", common.Validation("%v", err)
	}
	return parsed, nil
}

func errApplicationNotFound(appID string) error {
	return common.NotFound("application %s not found", appID)
}

// AddApplication creates an application owned by userID. The status
// defaults to pending.
func (s *Store) AddApplication(ctx context.Context, userID string, in models.ApplicationInput) (models.Application, error) {
	status := models.StatusPending
	if in.Status != "" {
		st, err := parseStatus(in.Status)
		if err != nil {
			return models.Application{}, err
		}
		status = st
	}

	var app models.Application
	err := s.update(ctx, "add application", func(ctx context.Context, st kv.Store) error {
		x, err := loadState(ctx, st)
		if err != nil {
			return err
		}
		if x.userIndex(userID) < 0 {
			return errUserNotFound(userID)
		}

		now := s.timestamp()
		app = models.Application{
			ID:          s.newID(),
			UserID:      userID,
			Status:      status,
			Destination: strings.TrimSpace(in.Destination),
			VisaType:    strings.TrimSpace(in.VisaType),
			Purpose:     strings.TrimSpace(in.Purpose),
			Fields:      maps.Clone(in.Fields),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if status == models.StatusApproved {
			app.ApprovedAt = &now
		}
		x.apps = append(x.apps, app)
		return x.commit(ctx, st, userID)
	})
	if err != nil {
		return models.Application{}, err
	}
	s.log.Debug(ctx, "application added", "user_id", userID, "application_id", app.ID)
	return app, nil
}

// UpdateApplication merges the patch into an application owned by userID.
func (s *Store) UpdateApplication(ctx context.Context, userID, appID string, patch models.ApplicationPatch) (models.Application, error) {
	if patch.Status != nil {
		st, err := parseStatus(*patch.Status)
		if err != nil {
			return models.Application{}, err
		}
		patch.Status = &st
	}

	var app models.Application
	err := s.update(ctx, "update application", func(ctx context.Context, st kv.Store) error {
		x, err := loadState(ctx, st)
		if err != nil {
			return err
		}
		i := x.appIndex(appID, userID)
		if i < 0 {
			return errApplicationNotFound(appID)
		}

		now := s.timestamp()
		a := &x.apps[i]
		if patch.Destination != nil {
			a.Destination = strings.TrimSpace(*patch.Destination)
		}
		if patch.VisaType != nil {
			a.VisaType = strings.TrimSpace(*patch.VisaType)
		}
		if patch.Purpose != nil {
			a.Purpose = strings.TrimSpace(*patch.Purpose)
		}
		if patch.Status != nil {
			setStatus(a, *patch.Status, now)
		}
		if len(patch.Fields) > 0 {
			if a.Fields == nil {
				a.Fields = make(map[string]any, len(patch.Fields))
			}
			for k, v := range patch.Fields {
				if v == nil {
					delete(a.Fields, k)
					continue
				}
				a.Fields[k] = v
			}
		}
		a.UpdatedAt = now
		app = *a
		return x.commit(ctx, st, userID)
	})
	if err != nil {
		return models.Application{}, err
	}
	return app, nil
}

// DeleteApplication removes an application owned by userID.
func (s *Store) DeleteApplication(ctx context.Context, userID, appID string) error {
	return s.update(ctx, "delete application", func(ctx context.Context, st kv.Store) error {
		x, err := loadState(ctx, st)
		if err != nil {
			return err
		}
		i := x.appIndex(appID, userID)
		if i < 0 {
			return errApplicationNotFound(appID)
		}
		x.apps = append(x.apps[:i], x.apps[i+1:]...)
		return x.commit(ctx, st, userID)
	})
}

// SetApplicationStatus is the administrative path: it finds the application
// by id alone. Empty adminNotes keep the existing notes. The owner's
// summary and sessions are rebuilt like for any other write.
func (s *Store) SetApplicationStatus(ctx context.Context, appID string, status models.ApplicationStatus, adminNotes string) (models.Application, error) {
	status, err := parseStatus(status)
	if err != nil {
		return models.Application{}, err
	}

	var app models.Application
	err = s.update(ctx, "set application status", func(ctx context.Context, st kv.Store) error {
		x, err := loadState(ctx, st)
		if err != nil {
			return err
		}
		i := x.appIndex(appID, "")
		if i < 0 {
			return errApplicationNotFound(appID)
		}

		now := s.timestamp()
		a := &x.apps[i]
		setStatus(a, status, now)
		if notes := strings.TrimSpace(adminNotes); notes != "" {
			a.AdminNotes = notes
		}
		a.UpdatedAt = now
		app = *a
		return x.commit(ctx, st, a.UserID)
	})
	if err != nil {
		return models.Application{}, err
	}
	s.log.Info(ctx, "application status changed", "application_id", appID, "status", string(status))
	return app, nil
}

// setStatus stamps approvedAt whenever the status becomes approved.
func setStatus(a *models.Application, status models.ApplicationStatus, now time.Time) {
	if status == models.StatusApproved && a.Status != models.StatusApproved {
		a.ApprovedAt = &now
	}
	a.Status = status
}

// ListApplications returns the user's applications in insertion order.
func (s *Store) ListApplications(ctx context.Context, userID string) ([]models.Application, error) {
	out := []models.Application{}
	err := s.view(ctx, "list applications", func(ctx context.Context, st kv.Store) error {
		apps, err := loadApplications(ctx, st)
		if err != nil {
			return err
		}
		for _, a := range apps {
			if a.UserID == userID {
				out = append(out, a)
			}
		}
		return nil
	})
	return out, err
}

// ListAllApplications returns the whole canonical collection.
func (s *Store) ListAllApplications(ctx context.Context) ([]models.Application, error) {
	out := []models.Application{}
	err := s.view(ctx, "list all applications", func(ctx context.Context, st kv.Store) error {
		apps, err := loadApplications(ctx, st)
		if err != nil {
			return err
		}
		out = append(out, apps...)
		return nil
	})
	return out, err
}

func (s *Store) GetApplication(ctx context.Context, userID, appID string) (models.Application, error) {
	var app models.Application
	err := s.view(ctx, "get application", func(ctx context.Context, st kv.Store) error {
		apps, err := loadApplications(ctx, st)
		if err != nil {
			return err
		}
		x := &state{apps: apps}
		i := x.appIndex(appID, userID)
		if i < 0 {
			return errApplicationNotFound(appID)
		}
		app = apps[i]
		return nil
	})
	return app, err
}

// ApplicationStats counts the user's applications by status, straight from
// the canonical collection.
func (s *Store) ApplicationStats(ctx context.Context, userID string) (models.ApplicationStats, error) {
	apps, err := s.ListApplications(ctx, userID)
	if err != nil {
		return models.ApplicationStats{}, err
	}
	var stats models.ApplicationStats
	for _, a := range apps {
		stats.Count(a.Status)
	}
	return stats, nil
}
