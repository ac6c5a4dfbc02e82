package careers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/careers-portal/internal/db"
	"github.com/jonathan/careers-portal/internal/types"
)

// UnknownJobPosition is shown for applications whose job no longer exists.
const UnknownJobPosition = "Unknown"

// ToView converts a stored application to its dashboard shape.
func ToView(app *db.Application) types.ApplicationView {
	view := types.ApplicationView{
		ID:          app.ID,
		JobID:       app.JobID,
		Name:        app.FullName,
		JobPosition: UnknownJobPosition,
		DateApplied: app.CreatedAt,
		Status:      types.NormalizeStoredStatus(app.Status),
		Email:       app.Email,
		ResumeURL:   app.ResumeURL,
	}
	if app.JobTitle != nil && *app.JobTitle != "" {
		view.JobPosition = *app.JobTitle
	}
	if app.Message != nil {
		view.Message = *app.Message
	}
	if app.AdminNote != nil {
		view.Note = *app.AdminNote
	}
	return view
}

// ListApplications returns applications newest first, optionally filtered by
// status and job. Filtering by Applied also matches legacy and unset statuses.
func (s *Service) ListApplications(ctx context.Context, status, jobID string) ([]types.ApplicationView, error) {
	filters := db.ApplicationFilters{JobID: strings.TrimSpace(jobID)}

	if strings.TrimSpace(status) != "" {
		parsed, ok := types.ParseApplicationStatus(status)
		if !ok {
			return nil, &ErrValidation{Field: "status", Message: statusChoices(nil)}
		}
		filters.Statuses = parsed.StoredSpellings()
		filters.IncludeNullStatus = parsed == types.StatusApplied
	}

	apps, err := s.store.ListApplications(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	views := make([]types.ApplicationView, 0, len(apps))
	for i := range apps {
		views = append(views, ToView(&apps[i]))
	}
	return views, nil
}

// GetApplication returns one application in its dashboard shape.
func (s *Service) GetApplication(ctx context.Context, id string) (*types.ApplicationView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &ErrNotFound{Resource: "application", ID: id}
	}

	app, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil {
		return nil, &ErrNotFound{Resource: "application", ID: id}
	}

	view := ToView(app)
	return &view, nil
}

// DeleteApplication permanently removes an application.
func (s *Service) DeleteApplication(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return &ErrValidation{Field: "id", Message: "required"}
	}

	if err := s.store.DeleteApplication(ctx, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return &ErrNotFound{Resource: "application", ID: id}
		}
		return fmt.Errorf("failed to delete application: %w", err)
	}

	s.logger.WithField("application_id", id).Info("application deleted")
	return nil
}
