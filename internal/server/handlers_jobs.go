package server

import (
	"net/http"

	"github.com/jonathan/careers-portal/internal/types"
)

// handleListJobs returns the active postings shown on the public board.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.careers.ListJobs(r.Context(), true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, jobs)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.careers.GetJob(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleAdminListJobs returns every posting, active or not.
func (s *Server) handleAdminListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.careers.ListJobs(r.Context(), false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, jobs)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	job, err := s.careers.CreateJob(r.Context(), &req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.adminLog(r).WithField("job_id", job.ID).Info("job created")
	s.jsonResponse(w, http.StatusCreated, job)
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateJobRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	job, err := s.careers.UpdateJob(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.adminLog(r).WithField("job_id", job.ID).Info("job updated")
	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.careers.DeleteJob(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.adminLog(r).WithField("job_id", id).Info("job deleted")
	s.successResponse(w, http.StatusOK, nil)
}
