// Package careerstest provides in-memory fakes for testing code built on the
// careers service.
package careerstest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/careers-portal/internal/db"
	"github.com/jonathan/careers-portal/internal/mail"
)

// MemStore is an in-memory careers.Store. FailOn names a method that
// returns ErrStore instead of running.
type MemStore struct {
	mu     sync.Mutex
	seq    int
	now    time.Time
	jobs   map[string]*db.Job
	apps   map[string]*db.Application
	FailOn string // method name that returns ErrStore
}

// ErrStore is returned by the method named in FailOn.
var ErrStore = errors.New("store unavailable")

// NewMemStore returns an empty store with a deterministic clock.
func NewMemStore() *MemStore {
	return &MemStore{
		now:  time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		jobs: map[string]*db.Job{},
		apps: map[string]*db.Application{},
	}
}

func (m *MemStore) tick() time.Time {
	m.now = m.now.Add(time.Minute)
	return m.now
}

func (m *MemStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *MemStore) fail(method string) error {
	if m.FailOn == method {
		return ErrStore
	}
	return nil
}

// AddJob seeds a job row as is.
func (m *MemStore) AddJob(j db.Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = m.tick()
	}
	m.jobs[j.ID] = &j
}

// AddApplication seeds an application row as is.
func (m *MemStore) AddApplication(a db.Application) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = m.tick()
	}
	m.apps[a.ID] = &a
}

func (m *MemStore) ListJobs(_ context.Context, activeOnly bool) ([]db.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("ListJobs"); err != nil {
		return nil, err
	}
	out := []db.Job{}
	for _, j := range m.jobs {
		if activeOnly && (!j.IsActive || j.Title == "" || j.Department == "") {
			continue
		}
		out = append(out, *j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (m *MemStore) GetJob(_ context.Context, id string) (*db.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetJob"); err != nil {
		return nil, err
	}
	j, ok := m.jobs[id]
	if !ok {
		return nil, nil
	}
	c := *j
	return &c, nil
}

func (m *MemStore) CreateJob(_ context.Context, in *db.JobCreateInput) (*db.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateJob"); err != nil {
		return nil, err
	}
	now := m.tick()
	j := &db.Job{
		ID: m.nextID("job"), Title: in.Title, Department: in.Department, Location: in.Location,
		Vacancies: in.Vacancies, EmploymentType: in.EmploymentType, WorkMode: in.WorkMode,
		Description: in.Description, Requirements: emptyToNil(in.Requirements),
		Responsibilities: emptyToNil(in.Responsibilities), IsActive: in.IsActive,
		CreatedAt: now, UpdatedAt: now,
	}
	m.jobs[j.ID] = j
	c := *j
	return &c, nil
}

func (m *MemStore) UpdateJob(_ context.Context, id string, in *db.JobUpdateInput) (*db.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpdateJob"); err != nil {
		return nil, err
	}
	j, ok := m.jobs[id]
	if !ok {
		return nil, nil
	}
	if in.Title != nil {
		j.Title = *in.Title
	}
	if in.Department != nil {
		j.Department = *in.Department
	}
	if in.Location != nil {
		j.Location = *in.Location
	}
	if in.Vacancies != nil {
		j.Vacancies = in.Vacancies
	}
	if in.EmploymentType != nil {
		j.EmploymentType = *in.EmploymentType
	}
	if in.WorkMode != nil {
		j.WorkMode = *in.WorkMode
	}
	if in.Description != nil {
		j.Description = *in.Description
	}
	if in.Requirements != nil {
		j.Requirements = emptyToNil(*in.Requirements)
	}
	if in.Responsibilities != nil {
		j.Responsibilities = emptyToNil(*in.Responsibilities)
	}
	if in.IsActive != nil {
		j.IsActive = *in.IsActive
	}
	j.UpdatedAt = m.tick()
	c := *j
	return &c, nil
}

func (m *MemStore) DeleteJob(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("DeleteJob"); err != nil {
		return err
	}
	if _, ok := m.jobs[id]; !ok {
		return fmt.Errorf("job %s: %w", id, db.ErrNotFound)
	}
	delete(m.jobs, id)
	return nil
}

// withTitle returns a copy of a with the current job title joined in.
func (m *MemStore) withTitle(a *db.Application) *db.Application {
	c := *a
	c.JobTitle = nil
	if j, ok := m.jobs[a.JobID]; ok {
		title := j.Title
		c.JobTitle = &title
	}
	return &c
}

func (m *MemStore) CreateApplication(_ context.Context, in *db.ApplicationCreateInput) (*db.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateApplication"); err != nil {
		return nil, err
	}
	now := m.tick()
	status := in.Status
	a := &db.Application{
		ID: m.nextID("app"), JobID: in.JobID, FullName: in.FullName, Email: in.Email,
		ResumeURL: in.ResumeURL, Message: in.Message, Status: &status,
		CreatedAt: now, UpdatedAt: now,
	}
	m.apps[a.ID] = a
	return m.withTitle(a), nil
}

func (m *MemStore) GetApplication(_ context.Context, id string) (*db.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetApplication"); err != nil {
		return nil, err
	}
	a, ok := m.apps[id]
	if !ok {
		return nil, nil
	}
	return m.withTitle(a), nil
}

func (m *MemStore) ListApplications(_ context.Context, f db.ApplicationFilters) ([]db.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("ListApplications"); err != nil {
		return nil, err
	}
	out := []db.Application{}
	for _, a := range m.apps {
		if f.JobID != "" && a.JobID != f.JobID {
			continue
		}
		if len(f.Statuses) > 0 || f.IncludeNullStatus {
			match := a.Status == nil && f.IncludeNullStatus
			for _, s := range f.Statuses {
				if a.Status != nil && *a.Status == s {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *m.withTitle(a))
	}
	sort.Slice(out, func(x, y int) bool { return out[x].CreatedAt.After(out[y].CreatedAt) })
	return out, nil
}

func (m *MemStore) ListApplicationJobIDs(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("ListApplicationJobIDs"); err != nil {
		return nil, err
	}
	ids := []string{}
	for _, a := range m.apps {
		ids = append(ids, a.JobID)
	}
	return ids, nil
}

func (m *MemStore) UpdateApplication(_ context.Context, id string, in *db.ApplicationUpdateInput) (*db.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpdateApplication"); err != nil {
		return nil, err
	}
	a, ok := m.apps[id]
	if !ok {
		return nil, nil
	}
	if in.Status != nil {
		s := *in.Status
		a.Status = &s
	}
	if in.AdminNote != nil {
		n := *in.AdminNote
		a.AdminNote = &n
	}
	if in.FullName != nil {
		a.FullName = *in.FullName
	}
	if in.Email != nil {
		a.Email = *in.Email
	}
	a.UpdatedAt = m.tick()
	return m.withTitle(a), nil
}

func (m *MemStore) DeleteApplication(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("DeleteApplication"); err != nil {
		return err
	}
	if _, ok := m.apps[id]; !ok {
		return fmt.Errorf("application %s: %w", id, db.ErrNotFound)
	}
	delete(m.apps, id)
	return nil
}

// Job returns a copy of the stored job, or nil.
func (m *MemStore) Job(id string) *db.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil
	}
	c := *j
	return &c
}

// Application returns a copy of the stored application row, or nil.
func (m *MemStore) Application(id string) *db.Application {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok {
		return nil
	}
	c := *a
	return &c
}

// JobCount returns the number of stored jobs.
func (m *MemStore) JobCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs)
}

// ApplicationCount returns the number of stored applications.
func (m *MemStore) ApplicationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.apps)
}

func emptyToNil(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	return items
}

// RecordingSender is a mail.Sender that records every message and fails
// with Err when it is set.
type RecordingSender struct {
	mu   sync.Mutex
	sent []mail.Message
	Err  error
}

func (r *RecordingSender) Send(_ context.Context, msg mail.Message) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	if r.Err != nil {
		return "", r.Err
	}
	return fmt.Sprintf("msg-%d", len(r.sent)), nil
}

// Messages returns a copy of everything sent so far.
func (r *RecordingSender) Messages() []mail.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]mail.Message(nil), r.sent...)
}
