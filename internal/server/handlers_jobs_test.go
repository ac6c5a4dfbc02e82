package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careers-portal/internal/db"
)

func TestAdminRoutes_RequireSession(t *testing.T) {
	ts := newTestServer(t)
	ts.store.AddJob(db.Job{ID: "J1", Title: "Designer", Department: "Design", IsActive: true})
	ts.store.AddApplication(db.Application{ID: "A1", JobID: "J1", FullName: "Ana", Email: "ana@x.com"})

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/admin/jobs"},
		{http.MethodPost, "/admin/jobs"},
		{http.MethodPatch, "/admin/jobs/J1"},
		{http.MethodDelete, "/admin/jobs/J1"},
		{http.MethodGet, "/admin/applications"},
		{http.MethodGet, "/admin/applications/A1"},
		{http.MethodPatch, "/admin/applications"},
		{http.MethodDelete, "/admin/applications?id=A1"},
		{http.MethodGet, "/admin/applications/stats"},
		{http.MethodPost, "/admin/applications/send-email"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			for _, token := range []string{"", "forged"} {
				w := ts.do(t, rt.method, rt.path, `{}`, token)
				assert.Equal(t, http.StatusUnauthorized, w.Code)
				assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
			}
		})
	}

	assert.NotNil(t, ts.store.Job("J1"), "rejected requests change nothing")
	assert.Equal(t, 1, ts.store.ApplicationCount())
}

func TestAdminRoutes_BearerHeader(t *testing.T) {
	ts := newTestServer(t)

	req := newJSONRequest(t, http.MethodGet, "/admin/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := serve(ts, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPublicJobs(t *testing.T) {
	ts := newTestServer(t)
	ts.store.AddJob(db.Job{ID: "J1", Title: "Designer", Department: "Design", IsActive: true})
	ts.store.AddJob(db.Job{ID: "J2", Title: "Closed", Department: "Ops", IsActive: false})
	ts.store.AddJob(db.Job{ID: "J3", Title: "Untitled", Department: "", IsActive: true})

	w := ts.do(t, http.MethodGet, "/jobs", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	jobs := decode[[]db.Job](t, w)
	require.Len(t, jobs, 1)
	assert.Equal(t, "J1", jobs[0].ID)

	first := ts.do(t, http.MethodGet, "/jobs/J1", nil, "")
	second := ts.do(t, http.MethodGet, "/jobs/J1", nil, "")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())

	w = ts.do(t, http.MethodGet, "/jobs/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"job not found: nope"}`, w.Body.String())
}

func TestPublicJobs_EmptyListIsArray(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/jobs", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAdminListJobs_IncludesInactive(t *testing.T) {
	ts := newTestServer(t)
	ts.store.AddJob(db.Job{ID: "J1", Title: "Designer", Department: "Design", IsActive: true})
	ts.store.AddJob(db.Job{ID: "J2", Title: "Closed", Department: "Ops", IsActive: false})

	w := ts.do(t, http.MethodGet, "/admin/jobs", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]db.Job](t, w), 2)
}

func TestAdminJobLifecycle(t *testing.T) {
	ts := newTestServer(t)

	create := map[string]any{
		"title":           "Backend Engineer",
		"department":      "Engineering",
		"location":        "Remote",
		"employment_type": "Full-time",
		"work_mode":       "Remote",
		"description":     "Build the API",
		"requirements":    []string{"Go", " ", "Postgres"},
	}
	w := ts.do(t, http.MethodPost, "/admin/jobs", create, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	job := decode[db.Job](t, w)
	assert.NotEmpty(t, job.ID)
	assert.True(t, job.IsActive, "jobs default to active")
	created := ts.lastEntry("job created")
	require.NotNil(t, created)
	assert.Equal(t, "admin-1", created.Data["admin_id"])
	assert.Equal(t, []string{"Go", "Postgres"}, job.Requirements)

	w = ts.do(t, http.MethodPatch, "/admin/jobs/"+job.ID, map[string]any{"description": "x"}, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[db.Job](t, w)
	assert.Equal(t, "x", updated.Description)
	assert.Equal(t, job.Title, updated.Title)
	assert.Equal(t, job.Location, updated.Location)
	assert.Equal(t, job.Requirements, updated.Requirements)

	w = ts.do(t, http.MethodDelete, "/admin/jobs/"+job.ID, nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = ts.do(t, http.MethodDelete, "/admin/jobs/"+job.ID, nil, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code, "second delete fails")
}

func TestAdminJobMutations_LogAdmin(t *testing.T) {
	ts := newTestServer(t)
	ts.store.AddJob(db.Job{ID: "J1", Title: "Designer", Department: "Design", IsActive: true})

	w := ts.do(t, http.MethodPatch, "/admin/jobs/J1", map[string]any{"location": "Remote"}, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.do(t, http.MethodDelete, "/admin/jobs/J1", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	for _, msg := range []string{"job updated", "job deleted"} {
		entry := ts.lastEntry(msg)
		require.NotNil(t, entry, msg)
		assert.Equal(t, "admin-1", entry.Data["admin_id"])
		assert.Equal(t, "J1", entry.Data["job_id"])
	}
}

func TestCreateJob_Invalid(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body any
	}{
		{name: "malformed json", body: `{"title":`},
		{name: "missing fields", body: map[string]any{"title": "Only a title"}},
		{name: "zero vacancies", body: map[string]any{
			"title": "T", "department": "D", "location": "L", "employment_type": "E",
			"work_mode": "W", "description": "x", "vacancies": 0,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/admin/jobs", tt.body, adminToken)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Zero(t, ts.store.JobCount())
}

func TestUpdateJob_Errors(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPatch, "/admin/jobs/missing", map[string]any{"title": "New"}, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	ts.store.AddJob(db.Job{ID: "J1", Title: "Designer", Department: "Design", IsActive: true})
	w = ts.do(t, http.MethodPatch, "/admin/jobs/J1", map[string]any{"title": ""}, adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Designer", ts.store.Job("J1").Title)
}
