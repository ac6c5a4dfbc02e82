package server

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careers-portal/internal/db"
	"github.com/jonathan/careers-portal/internal/types"
)

func strPtr(s string) *string { return &s }

func seedApplications(ts *testServer) {
	ts.store.AddJob(db.Job{ID: "J1", Title: "Designer", Department: "Design", IsActive: true})
	ts.store.AddJob(db.Job{ID: "J2", Title: "Engineer", Department: "Eng", IsActive: true})
	ts.store.AddApplication(db.Application{ID: "A1", JobID: "J1", FullName: "Ana", Email: "ana@x.com", Status: strPtr("Applied")})
	ts.store.AddApplication(db.Application{ID: "A2", JobID: "J1", FullName: "Bo", Email: "bo@x.com", Status: strPtr("Pending")})
	ts.store.AddApplication(db.Application{ID: "A3", JobID: "J2", FullName: "Cy", Email: "cy@x.com", Status: strPtr("Rejected")})
}

func TestApply(t *testing.T) {
	ts := newTestServer(t)
	ts.store.AddJob(db.Job{ID: "J1", Title: "Designer", Department: "Design", IsActive: true})

	w := ts.do(t, http.MethodPost, "/apply", map[string]any{
		"job_id":     "J1",
		"full_name":  "Ana",
		"email":      "ana@x.com",
		"resume_url": "https://files.example.com/ana.pdf",
		"message":    "Hello",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	require.Equal(t, 1, ts.store.ApplicationCount())
	app := ts.store.Application("app-1")
	require.NotNil(t, app)
	assert.Equal(t, "Applied", *app.Status)

	msgs := ts.sender.Messages()
	require.Len(t, msgs, 1, "one staff notice attempt")
	assert.Equal(t, "staff@example.com", msgs[0].To)
}

func TestApply_NoticeFailureStillCreated(t *testing.T) {
	ts := newTestServer(t)
	ts.sender.Err = errors.New("smtp down")

	w := ts.do(t, http.MethodPost, "/apply", map[string]any{
		"job_id": "J1", "full_name": "Ana", "email": "ana@x.com", "resume_url": "https://x/cv.pdf",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, ts.store.ApplicationCount())
}

func TestApply_Invalid(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body any
	}{
		{name: "malformed json", body: `not json`},
		{name: "missing resume", body: map[string]any{"job_id": "J1", "full_name": "Ana", "email": "ana@x.com"}},
		{name: "bad email", body: map[string]any{"job_id": "J1", "full_name": "Ana", "email": "ana at x", "resume_url": "u"}},
		{name: "blank name", body: map[string]any{"job_id": "J1", "full_name": "  ", "email": "ana@x.com", "resume_url": "u"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/apply", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Zero(t, ts.store.ApplicationCount())
	assert.Empty(t, ts.sender.Messages())
}

func TestListApplications(t *testing.T) {
	ts := newTestServer(t)
	seedApplications(ts)

	tests := []struct {
		query string
		want  []string
	}{
		{query: "", want: []string{"A3", "A2", "A1"}},
		{query: "?status=Applied", want: []string{"A2", "A1"}},
		{query: "?status=pending", want: []string{"A2", "A1"}},
		{query: "?status=Rejected", want: []string{"A3"}},
		{query: "?jobId=J2", want: []string{"A3"}},
		{query: "?status=Rejected&jobId=J1", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := ts.do(t, http.MethodGet, "/admin/applications"+tt.query, nil, adminToken)
			require.Equal(t, http.StatusOK, w.Code)
			views := decode[[]types.ApplicationView](t, w)
			ids := []string{}
			for _, v := range views {
				ids = append(ids, v.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	w := ts.do(t, http.MethodGet, "/admin/applications?status=Hired", nil, adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListApplications_ViewShape(t *testing.T) {
	ts := newTestServer(t)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ts.store.AddApplication(db.Application{
		ID: "A1", JobID: "gone", FullName: "Ana", Email: "ana@x.com", ResumeURL: "https://x/cv.pdf",
		Status: strPtr("Pending"), CreatedAt: created,
	})

	w := ts.do(t, http.MethodGet, "/admin/applications", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{
		"id": "A1",
		"jobId": "gone",
		"name": "Ana",
		"jobPosition": "Unknown",
		"dateApplied": "2026-03-01T12:00:00Z",
		"status": "Applied",
		"email": "ana@x.com",
		"resumeUrl": "https://x/cv.pdf",
		"message": "",
		"note": ""
	}]`, w.Body.String())
}

func TestGetApplication(t *testing.T) {
	ts := newTestServer(t)
	seedApplications(ts)

	w := ts.do(t, http.MethodGet, "/admin/applications/A1", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[types.ApplicationView](t, w)
	assert.Equal(t, "Designer", view.JobPosition)

	w = ts.do(t, http.MethodGet, "/admin/applications/missing", nil, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateApplication_EmailAndStatus(t *testing.T) {
	ts := newTestServer(t)
	seedApplications(ts)

	w := ts.do(t, http.MethodPatch, "/admin/applications", map[string]any{
		"id":     "A1",
		"status": "Accepted",
		"email":  "new@x.com",
	}, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true,"status":"Accepted"}`, w.Body.String())

	msgs := ts.sender.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "new@x.com", msgs[0].To, "notice goes to the updated address")
	assert.Equal(t, "new@x.com", ts.store.Application("A1").Email)
	assert.Equal(t, "Accepted", *ts.store.Application("A1").Status)

	entry := ts.lastEntry("application updated")
	require.NotNil(t, entry)
	assert.Equal(t, "admin-1", entry.Data["admin_id"])
	assert.Equal(t, "A1", entry.Data["application_id"])
	assert.Equal(t, true, entry.Data["email_sent"])
}

func TestUpdateApplication_NoteOnlyReportsStoredStatus(t *testing.T) {
	ts := newTestServer(t)
	seedApplications(ts)

	w := ts.do(t, http.MethodPatch, "/admin/applications", map[string]any{"id": "A2", "note": "call back"}, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"status":"Applied"}`, w.Body.String())
	assert.Empty(t, ts.sender.Messages())
}

func TestUpdateApplication_MailFailureStillSucceeds(t *testing.T) {
	ts := newTestServer(t)
	seedApplications(ts)
	ts.sender.Err = errors.New("quota exceeded")

	w := ts.do(t, http.MethodPatch, "/admin/applications", map[string]any{"id": "A1", "status": "Rejected"}, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Rejected", *ts.store.Application("A1").Status)
}

func TestUpdateApplication_Errors(t *testing.T) {
	ts := newTestServer(t)
	seedApplications(ts)

	tests := []struct {
		name string
		body any
		code int
	}{
		{name: "missing id", body: map[string]any{"status": "Accepted"}, code: http.StatusBadRequest},
		{name: "unknown status", body: map[string]any{"id": "A1", "status": "Hired"}, code: http.StatusBadRequest},
		{name: "bad email", body: map[string]any{"id": "A1", "email": "nope"}, code: http.StatusBadRequest},
		{name: "unknown application", body: map[string]any{"id": "A9", "status": "Accepted"}, code: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPatch, "/admin/applications", tt.body, adminToken)
			assert.Equal(t, tt.code, w.Code)
		})
	}
	assert.Empty(t, ts.sender.Messages())
	assert.Equal(t, "Applied", *ts.store.Application("A1").Status)
}

func TestDeleteApplication(t *testing.T) {
	ts := newTestServer(t)
	seedApplications(ts)

	w := ts.do(t, http.MethodDelete, "/admin/applications", nil, adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code, "id is required")

	w = ts.do(t, http.MethodDelete, "/admin/applications?id=A1", nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Nil(t, ts.store.Application("A1"))
	require.NotNil(t, ts.lastEntry("application deleted"))
	assert.Equal(t, "admin-1", ts.lastEntry("application deleted").Data["admin_id"])

	w = ts.do(t, http.MethodDelete, "/admin/applications?id=A1", nil, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplicationStats(t *testing.T) {
	ts := newTestServer(t)
	seedApplications(ts)

	w := ts.do(t, http.MethodGet, "/admin/applications/stats", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"J1":2,"J2":1}`, w.Body.String())
}

func TestSendEmail(t *testing.T) {
	valid := map[string]any{
		"applicationId":  "A1",
		"status":         "Shortlisted",
		"candidateName":  "Ana",
		"candidateEmail": "ana@x.com",
		"jobTitle":       "Designer",
	}
	with := func(k string, v any) map[string]any {
		out := map[string]any{}
		for key, val := range valid {
			out[key] = val
		}
		out[k] = v
		return out
	}

	t.Run("sent", func(t *testing.T) {
		ts := newTestServer(t)
		w := ts.do(t, http.MethodPost, "/admin/applications/send-email", valid, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decode[map[string]any](t, w)
		assert.Equal(t, true, body["success"])
		assert.NotEmpty(t, body["messageId"])

		msgs := ts.sender.Messages()
		require.Len(t, msgs, 1)
		assert.Equal(t, "ana@x.com", msgs[0].To)
	})

	t.Run("validation", func(t *testing.T) {
		ts := newTestServer(t)
		for _, body := range []map[string]any{
			with("status", "Applied"),
			with("status", "Hired"),
			with("candidateEmail", ""),
			with("jobTitle", ""),
		} {
			w := ts.do(t, http.MethodPost, "/admin/applications/send-email", body, adminToken)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
		}
		assert.Empty(t, ts.sender.Messages())
	})

	t.Run("transport failure", func(t *testing.T) {
		ts := newTestServer(t)
		ts.sender.Err = errors.New("connection refused")
		w := ts.do(t, http.MethodPost, "/admin/applications/send-email", valid, adminToken)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Email service failed"}`, w.Body.String())
	})
}
