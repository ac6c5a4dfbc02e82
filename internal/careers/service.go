// Package careers implements the job registry, application intake and the
// application status workflow.
package careers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/careers-portal/internal/db"
	"github.com/jonathan/careers-portal/internal/mail"
)

// Store is the persistence the service needs. *db.DB satisfies it.
type Store interface {
	ListJobs(ctx context.Context, activeOnly bool) ([]db.Job, error)
	GetJob(ctx context.Context, id string) (*db.Job, error)
	CreateJob(ctx context.Context, input *db.JobCreateInput) (*db.Job, error)
	UpdateJob(ctx context.Context, id string, input *db.JobUpdateInput) (*db.Job, error)
	DeleteJob(ctx context.Context, id string) error

	CreateApplication(ctx context.Context, input *db.ApplicationCreateInput) (*db.Application, error)
	GetApplication(ctx context.Context, id string) (*db.Application, error)
	ListApplications(ctx context.Context, filters db.ApplicationFilters) ([]db.Application, error)
	ListApplicationJobIDs(ctx context.Context) ([]string, error)
	UpdateApplication(ctx context.Context, id string, input *db.ApplicationUpdateInput) (*db.Application, error)
	DeleteApplication(ctx context.Context, id string) error
}

// Options configures a Service.
type Options struct {
	// StaffEmail receives new-application notices. Empty disables them.
	StaffEmail string
	Logger     logrus.FieldLogger
}

// Service provides the careers business logic.
type Service struct {
	store      Store
	notifier   *Notifier
	staffEmail string
	logger     logrus.FieldLogger
	validate   *validator.Validate
}

// New creates a Service.
func New(store Store, sender mail.Sender, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		store:      store,
		notifier:   NewNotifier(sender, logger),
		staffEmail: opts.StaffEmail,
		logger:     logger,
		validate:   newValidator(),
	}
}
