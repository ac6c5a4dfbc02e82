package careers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/careers-portal/internal/db"
	"github.com/jonathan/careers-portal/internal/types"
)

// ListJobs returns all jobs, or only the public active ones, newest first.
func (s *Service) ListJobs(ctx context.Context, activeOnly bool) ([]db.Job, error) {
	jobs, err := s.store.ListJobs(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// GetJob returns a job by id.
func (s *Service) GetJob(ctx context.Context, id string) (*db.Job, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &ErrNotFound{Resource: "job", ID: id}
	}

	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, &ErrNotFound{Resource: "job", ID: id}
	}
	return job, nil
}

// CreateJob validates and stores a new job. Jobs are active unless is_active is false.
func (s *Service) CreateJob(ctx context.Context, req *types.CreateJobRequest) (*db.Job, error) {
	req.Normalize()
	if err := s.checkStruct(req); err != nil {
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	job, err := s.store.CreateJob(ctx, &db.JobCreateInput{
		Title:            req.Title,
		Department:       req.Department,
		Location:         req.Location,
		Vacancies:        req.Vacancies,
		EmploymentType:   req.EmploymentType,
		WorkMode:         req.WorkMode,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		IsActive:         active,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.logger.WithField("job_id", job.ID).Info("job created")
	return job, nil
}

// UpdateJob writes only the supplied fields of a job.
func (s *Service) UpdateJob(ctx context.Context, id string, req *types.UpdateJobRequest) (*db.Job, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &ErrValidation{Field: "id", Message: "required"}
	}
	req.Normalize()
	if err := s.checkStruct(req); err != nil {
		return nil, err
	}

	job, err := s.store.UpdateJob(ctx, id, &db.JobUpdateInput{
		Title:            req.Title,
		Department:       req.Department,
		Location:         req.Location,
		Vacancies:        req.Vacancies,
		EmploymentType:   req.EmploymentType,
		WorkMode:         req.WorkMode,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		IsActive:         req.IsActive,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	if job == nil {
		return nil, &ErrNotFound{Resource: "job", ID: id}
	}

	s.logger.WithField("job_id", id).Info("job updated")
	return job, nil
}

// DeleteJob permanently removes a job. Its applications are kept.
func (s *Service) DeleteJob(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return &ErrNotFound{Resource: "job", ID: id}
	}

	if err := s.store.DeleteJob(ctx, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return &ErrNotFound{Resource: "job", ID: id}
		}
		return fmt.Errorf("failed to delete job: %w", err)
	}

	s.logger.WithField("job_id", id).Info("job deleted")
	return nil
}
