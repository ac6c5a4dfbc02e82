package types

import "strings"

// CreateJobRequest is the admin payload for creating a job posting.
type CreateJobRequest struct {
	Title            string   `json:"title" validate:"required"`
	Department       string   `json:"department" validate:"required"`
	Location         string   `json:"location" validate:"required"`
	Vacancies        *int     `json:"vacancies,omitempty" validate:"omitnil,min=1"`
	EmploymentType   string   `json:"employment_type" validate:"required"`
	WorkMode         string   `json:"work_mode" validate:"required"`
	Description      string   `json:"description" validate:"required"`
	Requirements     []string `json:"requirements,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	IsActive         *bool    `json:"is_active,omitempty"`
}

// Normalize trims text fields and collapses empty lists to nil.
func (r *CreateJobRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Department = strings.TrimSpace(r.Department)
	r.Location = strings.TrimSpace(r.Location)
	r.EmploymentType = strings.TrimSpace(r.EmploymentType)
	r.WorkMode = strings.TrimSpace(r.WorkMode)
	r.Description = strings.TrimSpace(r.Description)
	r.Requirements = NormalizeList(r.Requirements)
	r.Responsibilities = NormalizeList(r.Responsibilities)
}

// UpdateJobRequest is a partial job update. A nil field is left untouched.
type UpdateJobRequest struct {
	Title            *string   `json:"title,omitempty" validate:"omitnil,min=1"`
	Department       *string   `json:"department,omitempty" validate:"omitnil,min=1"`
	Location         *string   `json:"location,omitempty" validate:"omitnil,min=1"`
	Vacancies        *int      `json:"vacancies,omitempty" validate:"omitnil,min=1"`
	EmploymentType   *string   `json:"employment_type,omitempty" validate:"omitnil,min=1"`
	WorkMode         *string   `json:"work_mode,omitempty" validate:"omitnil,min=1"`
	Description      *string   `json:"description,omitempty" validate:"omitnil,min=1"`
	Requirements     *[]string `json:"requirements,omitempty"`
	Responsibilities *[]string `json:"responsibilities,omitempty"`
	IsActive         *bool     `json:"is_active,omitempty"`
}

// Normalize trims supplied text fields and collapses supplied empty lists to nil.
func (r *UpdateJobRequest) Normalize() {
	for _, field := range []*string{r.Title, r.Department, r.Location, r.EmploymentType, r.WorkMode, r.Description} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
	if r.Requirements != nil {
		*r.Requirements = NormalizeList(*r.Requirements)
	}
	if r.Responsibilities != nil {
		*r.Responsibilities = NormalizeList(*r.Responsibilities)
	}
}

// NormalizeList trims every entry, drops blank ones and returns nil for an empty result.
func NormalizeList(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
