package server

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/careers-portal/internal/careers"
	"github.com/jonathan/careers-portal/internal/identity"
)

// internalErrorMessage is the only detail a client sees for a 500.
const internalErrorMessage = "Internal server error"

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *careers.ErrValidation
		notFound   *careers.ErrNotFound
		badLogin   *identity.ErrInvalidCredentials
	)

	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &badLogin), errors.Is(err, identity.ErrUnauthenticated):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status and writes it. Server errors are logged and
// their detail withheld from the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
		s.errorResponse(w, status, internalErrorMessage)
		return
	}
	s.errorResponse(w, status, err.Error())
}
