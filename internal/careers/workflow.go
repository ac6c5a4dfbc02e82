package careers

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/careers-portal/internal/db"
	"github.com/jonathan/careers-portal/internal/mail"
	"github.com/jonathan/careers-portal/internal/types"
)

// fallbackJobTitle names the role in candidate emails when the job no longer exists.
const fallbackJobTitle = "the position"

// statusChoices describes the accepted statuses for a validation message.
// A nil keep accepts every status.
func statusChoices(keep func(types.ApplicationStatus) bool) string {
	names := make([]string, 0, len(types.AllStatuses()))
	for _, status := range types.AllStatuses() {
		if keep == nil || keep(status) {
			names = append(names, status.String())
		}
	}
	return "must be one of " + strings.Join(names, ", ")
}

// UpdateResult is the outcome of an application update. The update is
// committed whenever err is nil; Notification is informational.
type UpdateResult struct {
	Application  *db.Application
	Status       *types.ApplicationStatus // the supplied status, nil when none was given
	Notification NotifyResult
}

// UpdateApplication applies the supplied fields in one write, then emails the
// candidate when the supplied status is Shortlisted, Accepted or Rejected. The
// email uses the post-update name, address and job title. A failed email never
// fails the update.
func (s *Service) UpdateApplication(ctx context.Context, req *types.UpdateApplicationRequest) (*UpdateResult, error) {
	req.Normalize()
	if err := s.checkStruct(req); err != nil {
		return nil, err
	}

	input := &db.ApplicationUpdateInput{
		AdminNote: req.Note,
		FullName:  req.Name,
		Email:     req.Email,
	}

	var status *types.ApplicationStatus
	if req.Status != nil {
		parsed, ok := types.ParseApplicationStatus(*req.Status)
		if !ok {
			return nil, &ErrValidation{Field: "status", Message: statusChoices(nil)}
		}
		status = &parsed
		stored := parsed.String()
		input.Status = &stored
	}

	app, err := s.store.UpdateApplication(ctx, req.ID, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	if app == nil {
		return nil, &ErrNotFound{Resource: "application", ID: req.ID}
	}

	fields := logrus.Fields{"application_id": app.ID, "kind": "status_update"}
	entry := s.logger.WithFields(fields)
	if status != nil {
		entry = entry.WithField("status", status.String())
	}
	entry.Info("application updated")

	result := &UpdateResult{Application: app, Status: status}
	if status == nil || !status.Notifies() {
		return result, nil
	}

	fields["status"] = status.String()
	result.Notification = s.notifyCandidate(ctx, *status, app, fields)
	return result, nil
}

func (s *Service) notifyCandidate(ctx context.Context, status types.ApplicationStatus, app *db.Application, fields logrus.Fields) NotifyResult {
	jobTitle := fallbackJobTitle
	if app.JobTitle != nil && *app.JobTitle != "" {
		jobTitle = *app.JobTitle
	}

	msg, err := mail.RenderStatus(status, app.FullName, jobTitle)
	if err != nil {
		s.logger.WithFields(fields).WithError(err).Warn("failed to render status email")
		return NotifyResult{Err: err}
	}
	msg.To = app.Email

	return s.notifier.Notify(ctx, msg, fields)
}

// SendStatusEmail sends a status email on explicit admin request. Unlike
// UpdateApplication, delivery errors are returned to the caller.
func (s *Service) SendStatusEmail(ctx context.Context, req *types.SendEmailRequest) (string, error) {
	req.Status = strings.TrimSpace(req.Status)
	req.CandidateEmail = strings.TrimSpace(req.CandidateEmail)
	if err := s.checkStruct(req); err != nil {
		return "", err
	}

	status, ok := types.ParseApplicationStatus(req.Status)
	if !ok || !status.Notifies() {
		return "", &ErrValidation{Field: "status", Message: statusChoices(types.ApplicationStatus.Notifies)}
	}

	msg, err := mail.RenderStatus(status, req.CandidateName, req.JobTitle)
	if err != nil {
		return "", fmt.Errorf("failed to render status email: %w", err)
	}
	msg.To = req.CandidateEmail

	id, err := s.notifier.sender.Send(ctx, msg)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"application_id": req.ApplicationID,
			"status":         status.String(),
		}).WithError(err).Error("status email failed")
		return "", fmt.Errorf("failed to send status email: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"application_id": req.ApplicationID,
		"status":         status.String(),
		"message_id":     id,
	}).Info("status email sent")
	return id, nil
}
