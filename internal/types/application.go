package types

import (
	"strings"
	"time"
)

// ApplyRequest is the public application submission.
type ApplyRequest struct {
	JobID     string  `json:"job_id" validate:"required"`
	FullName  string  `json:"full_name" validate:"required"`
	Email     string  `json:"email" validate:"required,careers_email"`
	ResumeURL string  `json:"resume_url" validate:"required"`
	Message   *string `json:"message,omitempty"`
}

// Normalize trims the submitted fields. A blank message becomes nil.
func (r *ApplyRequest) Normalize() {
	r.JobID = strings.TrimSpace(r.JobID)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.ResumeURL = strings.TrimSpace(r.ResumeURL)
	if r.Message != nil {
		msg := strings.TrimSpace(*r.Message)
		if msg == "" {
			r.Message = nil
		} else {
			r.Message = &msg
		}
	}
}

// UpdateApplicationRequest is the admin status/contact patch.
// Nil fields are left untouched.
type UpdateApplicationRequest struct {
	ID     string  `json:"id" validate:"required"`
	Status *string `json:"status,omitempty"`
	Note   *string `json:"note,omitempty"`
	Name   *string `json:"name,omitempty" validate:"omitnil,min=1"`
	Email  *string `json:"email,omitempty" validate:"omitnil,careers_email"`
}

// Normalize trims the id and contact fields. An empty status is treated as absent.
func (r *UpdateApplicationRequest) Normalize() {
	r.ID = strings.TrimSpace(r.ID)
	if r.Status != nil && strings.TrimSpace(*r.Status) == "" {
		r.Status = nil
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.Email != nil {
		email := strings.TrimSpace(*r.Email)
		r.Email = &email
	}
}

// SendEmailRequest asks for a status email to be sent directly to a candidate.
type SendEmailRequest struct {
	ApplicationID  string `json:"applicationId" validate:"required"`
	Status         string `json:"status" validate:"required"`
	CandidateName  string `json:"candidateName" validate:"required"`
	CandidateEmail string `json:"candidateEmail" validate:"required,careers_email"`
	JobTitle       string `json:"jobTitle" validate:"required"`
}

// ApplicationView is the admin dashboard shape of an application.
type ApplicationView struct {
	ID          string            `json:"id"`
	JobID       string            `json:"jobId"`
	Name        string            `json:"name"`
	JobPosition string            `json:"jobPosition"`
	DateApplied time.Time         `json:"dateApplied"`
	Status      ApplicationStatus `json:"status"`
	Email       string            `json:"email"`
	ResumeURL   string            `json:"resumeUrl"`
	Message     string            `json:"message"`
	Note        string            `json:"note"`
}
