package db

import (
	"time"

	"github.com/google/uuid"
)

// Job is a job posting row.
type Job struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Department       string    `json:"department"`
	Location         string    `json:"location"`
	Vacancies        *int      `json:"vacancies"`
	EmploymentType   string    `json:"employment_type"`
	WorkMode         string    `json:"work_mode"`
	Description      string    `json:"description"`
	Requirements     []string  `json:"requirements"`
	Responsibilities []string  `json:"responsibilities"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// JobCreateInput contains the fields for inserting a job. Requirement and
// responsibility lists are stored as NULL when empty.
type JobCreateInput struct {
	Title            string
	Department       string
	Location         string
	Vacancies        *int
	EmploymentType   string
	WorkMode         string
	Description      string
	Requirements     []string
	Responsibilities []string
	IsActive         bool
}

// JobUpdateInput is a partial job update; nil fields are not written.
type JobUpdateInput struct {
	Title            *string
	Department       *string
	Location         *string
	Vacancies        *int
	EmploymentType   *string
	WorkMode         *string
	Description      *string
	Requirements     *[]string
	Responsibilities *[]string
	IsActive         *bool
}

// Application is an application row joined with its job's title.
// Status is the raw stored value and may be NULL or a legacy spelling.
type Application struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	ResumeURL string    `json:"resume_url"`
	Message   *string   `json:"message,omitempty"`
	Status    *string   `json:"status,omitempty"`
	AdminNote *string   `json:"admin_note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JobTitle *string `json:"job_title,omitempty"` // joined; nil when the job no longer exists
}

// ApplicationCreateInput contains the fields for inserting an application.
type ApplicationCreateInput struct {
	JobID     string
	FullName  string
	Email     string
	ResumeURL string
	Message   *string
	Status    string
}

// ApplicationUpdateInput is a partial application update; nil fields are not written.
// job_id and created_at are never updatable.
type ApplicationUpdateInput struct {
	Status    *string
	AdminNote *string
	FullName  *string
	Email     *string
}

// ApplicationFilters holds optional filters for listing applications.
// Statuses matches any of the given stored spellings; IncludeNullStatus also
// matches rows whose status is NULL.
type ApplicationFilters struct {
	Statuses          []string
	IncludeNullStatus bool
	JobID             string
}

// AdminUser is a locally managed admin account.
type AdminUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	CreatedAt    time.Time `json:"created_at"`
}
