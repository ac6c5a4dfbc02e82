package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `a.id, a.job_id, a.full_name, a.email, a.resume_url, a.message,
	a.status, a.admin_note, a.created_at, a.updated_at, j.title`

func scanApplication(row pgx.Row) (*Application, error) {
	var a Application
	err := row.Scan(&a.ID, &a.JobID, &a.FullName, &a.Email, &a.ResumeURL, &a.Message,
		&a.Status, &a.AdminNote, &a.CreatedAt, &a.UpdatedAt, &a.JobTitle)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateApplication inserts an application with a fresh ID.
func (db *DB) CreateApplication(ctx context.Context, input *ApplicationCreateInput) (*Application, error) {
	a, err := scanApplication(db.pool.QueryRow(ctx,
		`WITH inserted AS (
		     INSERT INTO applications (id, job_id, full_name, email, resume_url, message, status)
		     VALUES ($1, $2, $3, $4, $5, $6, $7)
		     RETURNING *
		 )
		 SELECT `+applicationColumns+`
		 FROM inserted a LEFT JOIN jobs j ON j.id = a.job_id`,
		uuid.NewString(), input.JobID, input.FullName, input.Email, input.ResumeURL,
		input.Message, input.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return a, nil
}

// GetApplication retrieves an application by ID. Returns nil, nil when it does not exist.
func (db *DB) GetApplication(ctx context.Context, id string) (*Application, error) {
	a, err := scanApplication(db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications a LEFT JOIN jobs j ON j.id = a.job_id
		 WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return a, nil
}

// ListApplications retrieves applications newest first with optional filters.
func (db *DB) ListApplications(ctx context.Context, filters ApplicationFilters) ([]Application, error) {
	query, args := buildApplicationList(filters)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func buildApplicationList(filters ApplicationFilters) (string, []any) {
	query := `SELECT ` + applicationColumns + `
		FROM applications a LEFT JOIN jobs j ON j.id = a.job_id WHERE 1=1`
	args := []any{}
	argNum := 1

	if len(filters.Statuses) > 0 || filters.IncludeNullStatus {
		var conds []string
		if len(filters.Statuses) > 0 {
			conds = append(conds, fmt.Sprintf("a.status = ANY($%d)", argNum))
			args = append(args, filters.Statuses)
			argNum++
		}
		if filters.IncludeNullStatus {
			conds = append(conds, "a.status IS NULL")
		}
		query += " AND (" + strings.Join(conds, " OR ") + ")"
	}
	if filters.JobID != "" {
		query += fmt.Sprintf(" AND a.job_id = $%d", argNum)
		args = append(args, filters.JobID)
	}

	query += " ORDER BY a.created_at DESC"
	return query, args
}

// ListApplicationJobIDs returns the job_id of every application.
func (db *DB) ListApplicationJobIDs(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx, `SELECT job_id FROM applications`)
	if err != nil {
		return nil, fmt.Errorf("failed to list application job ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan job id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateApplication writes the supplied fields in one statement and returns the
// post-update row with its job title. Returns nil, nil when no application matches.
func (db *DB) UpdateApplication(ctx context.Context, id string, input *ApplicationUpdateInput) (*Application, error) {
	query, args := buildApplicationUpdate(id, input)
	a, err := scanApplication(db.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return a, nil
}

// buildApplicationUpdate builds the UPDATE for the supplied fields.
// updated_at is always refreshed.
func buildApplicationUpdate(id string, input *ApplicationUpdateInput) (string, []any) {
	sets := []string{}
	args := []any{}
	argNum := 1

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argNum))
		args = append(args, value)
		argNum++
	}

	if input.Status != nil {
		add("status", *input.Status)
	}
	if input.AdminNote != nil {
		add("admin_note", *input.AdminNote)
	}
	if input.FullName != nil {
		add("full_name", *input.FullName)
	}
	if input.Email != nil {
		add("email", *input.Email)
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(`WITH updated AS (
		UPDATE applications SET %s WHERE id = $%d RETURNING *
	)
	SELECT %s FROM updated a LEFT JOIN jobs j ON j.id = a.job_id`,
		strings.Join(sets, ", "), argNum, applicationColumns)
	args = append(args, id)
	return query, args
}

// DeleteApplication permanently removes an application. Returns ErrNotFound when no row matches.
func (db *DB) DeleteApplication(ctx context.Context, id string) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	return nil
}
