package server

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/careers-portal/internal/types"
)

// handleApply stores a public application. The staff notice outcome is not
// reported to the applicant.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req types.ApplyRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if _, err := s.careers.SubmitApplication(r.Context(), &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.successResponse(w, http.StatusCreated, nil)
}

// handleListApplications supports ?status= and ?jobId= filters.
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	views, err := s.careers.ListApplications(r.Context(), q.Get("status"), q.Get("jobId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, views)
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	view, err := s.careers.GetApplication(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, view)
}

// handleUpdateApplication applies a status/note/contact patch. The response
// reflects the committed update even when the candidate email failed.
func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateApplicationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	result, err := s.careers.UpdateApplication(r.Context(), &req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status := types.NormalizeStoredStatus(result.Application.Status)
	if result.Status != nil {
		status = *result.Status
	}
	s.adminLog(r).WithFields(logrus.Fields{
		"application_id": result.Application.ID,
		"status":         status,
		"email_sent":     result.Notification.Sent,
	}).Info("application updated")
	s.successResponse(w, http.StatusOK, map[string]any{"status": status})
}

func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if err := s.careers.DeleteApplication(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.adminLog(r).WithField("application_id", id).Info("application deleted")
	s.successResponse(w, http.StatusOK, nil)
}

func (s *Server) handleApplicationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.careers.ApplicationStats(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}

// handleSendEmail sends a status email on demand. Unlike the workflow, a
// delivery failure is an error here.
func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	var req types.SendEmailRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	id, err := s.careers.SendStatusEmail(r.Context(), &req)
	if err != nil {
		if HTTPStatus(err) == http.StatusInternalServerError {
			s.adminLog(r).WithError(err).WithField("application_id", req.ApplicationID).Error("send-email failed")
			s.errorResponse(w, http.StatusInternalServerError, "Email service failed")
			return
		}
		s.writeError(w, r, err)
		return
	}
	s.adminLog(r).WithFields(logrus.Fields{
		"application_id": req.ApplicationID,
		"message_id":     id,
	}).Info("status email sent")
	s.successResponse(w, http.StatusOK, map[string]any{"messageId": id})
}
