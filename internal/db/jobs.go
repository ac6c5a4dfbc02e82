package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, title, department, location, vacancies, employment_type, work_mode,
	description, requirements, responsibilities, is_active, created_at, updated_at`

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.Title, &j.Department, &j.Location, &j.Vacancies,
		&j.EmploymentType, &j.WorkMode, &j.Description, &j.Requirements,
		&j.Responsibilities, &j.IsActive, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// ListJobs retrieves jobs newest first. With activeOnly set, only active jobs
// that have a title and department are returned.
func (db *DB) ListJobs(ctx context.Context, activeOnly bool) ([]Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	if activeOnly {
		query += ` WHERE is_active = TRUE AND title <> '' AND department <> ''`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// GetJob retrieves a job by ID. Returns nil, nil when it does not exist.
func (db *DB) GetJob(ctx context.Context, id string) (*Job, error) {
	j, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return j, nil
}

// CreateJob inserts a job with a fresh ID.
func (db *DB) CreateJob(ctx context.Context, input *JobCreateInput) (*Job, error) {
	j, err := scanJob(db.pool.QueryRow(ctx,
		`INSERT INTO jobs (id, title, department, location, vacancies, employment_type,
		                   work_mode, description, requirements, responsibilities, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+jobColumns,
		uuid.NewString(), input.Title, input.Department, input.Location, input.Vacancies,
		input.EmploymentType, input.WorkMode, input.Description,
		nullIfEmptyList(input.Requirements), nullIfEmptyList(input.Responsibilities),
		input.IsActive,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return j, nil
}

// UpdateJob writes the supplied fields of a job. Returns nil, nil when no job matches.
func (db *DB) UpdateJob(ctx context.Context, id string, input *JobUpdateInput) (*Job, error) {
	query, args := buildJobUpdate(id, input)
	j, err := scanJob(db.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return j, nil
}

// buildJobUpdate builds the UPDATE statement for the supplied fields.
// updated_at is always refreshed.
func buildJobUpdate(id string, input *JobUpdateInput) (string, []any) {
	sets := []string{}
	args := []any{}
	argNum := 1

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argNum))
		args = append(args, value)
		argNum++
	}

	if input.Title != nil {
		add("title", *input.Title)
	}
	if input.Department != nil {
		add("department", *input.Department)
	}
	if input.Location != nil {
		add("location", *input.Location)
	}
	if input.Vacancies != nil {
		add("vacancies", *input.Vacancies)
	}
	if input.EmploymentType != nil {
		add("employment_type", *input.EmploymentType)
	}
	if input.WorkMode != nil {
		add("work_mode", *input.WorkMode)
	}
	if input.Description != nil {
		add("description", *input.Description)
	}
	if input.Requirements != nil {
		add("requirements", nullIfEmptyList(*input.Requirements))
	}
	if input.Responsibilities != nil {
		add("responsibilities", nullIfEmptyList(*input.Responsibilities))
	}
	if input.IsActive != nil {
		add("is_active", *input.IsActive)
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(`UPDATE jobs SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), argNum, jobColumns)
	args = append(args, id)
	return query, args
}

// DeleteJob permanently removes a job. Returns ErrNotFound when no job matches.
func (db *DB) DeleteJob(ctx context.Context, id string) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	return nil
}

// nullIfEmptyList converts an empty list to nil so it is stored as NULL
func nullIfEmptyList(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	return items
}
