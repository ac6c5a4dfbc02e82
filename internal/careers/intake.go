package careers

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/careers-portal/internal/db"
	"github.com/jonathan/careers-portal/internal/mail"
	"github.com/jonathan/careers-portal/internal/types"
)

// SubmitResult is the outcome of an application submission. The
// application is stored whenever err is nil; Notice is informational.
type SubmitResult struct {
	Application *db.Application
	Notice      NotifyResult
}

// SubmitApplication stores a new application with status Applied and then
// tells staff about it. A failed notice never fails the submission.
func (s *Service) SubmitApplication(ctx context.Context, req *types.ApplyRequest) (*SubmitResult, error) {
	req.Normalize()
	if err := s.checkStruct(req); err != nil {
		return nil, err
	}

	app, err := s.store.CreateApplication(ctx, &db.ApplicationCreateInput{
		JobID:     req.JobID,
		FullName:  req.FullName,
		Email:     req.Email,
		ResumeURL: req.ResumeURL,
		Message:   req.Message,
		Status:    string(types.StatusApplied),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	fields := logrus.Fields{"application_id": app.ID, "job_id": app.JobID, "kind": "staff_notice"}
	s.logger.WithFields(fields).Info("application submitted")

	return &SubmitResult{Application: app, Notice: s.sendStaffNotice(ctx, app, fields)}, nil
}

func (s *Service) sendStaffNotice(ctx context.Context, app *db.Application, fields logrus.Fields) NotifyResult {
	if s.staffEmail == "" {
		return s.notifier.Skip("no staff address configured", fields)
	}

	msg, err := mail.RenderStaffNotice(s.staffEmail, mail.StaffNotice{
		CandidateName: app.FullName,
		Email:         app.Email,
		JobID:         app.JobID,
		JobTitle:      app.JobTitle,
		Message:       app.Message,
		ResumeURL:     app.ResumeURL,
	})
	if err != nil {
		s.logger.WithFields(fields).WithError(err).Warn("failed to render staff notice")
		return NotifyResult{Err: err}
	}

	return s.notifier.Notify(ctx, msg, fields)
}
