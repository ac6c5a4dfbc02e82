package server

import (
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/careers-portal/internal/identity"
	"github.com/jonathan/careers-portal/internal/server/middleware"
	"github.com/jonathan/careers-portal/internal/types"
)

// RefreshTokenCookie carries the refresh token issued at login.
const RefreshTokenCookie = "careers-refresh-token"

// sessionCookieMaxAge is the lifetime of both session cookies.
const sessionCookieMaxAge = 4 * time.Hour

var loginValidator = newLoginValidator()

func newLoginValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// handleLogin signs the admin in and sets the session cookies.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := loginValidator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	session, err := s.identity.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if HTTPStatus(err) == http.StatusUnauthorized {
			s.logger.WithField("email", req.Email).Info("login rejected")
		}
		s.writeError(w, r, err)
		return
	}

	s.setSessionCookies(w, session.AccessToken, session.RefreshToken)
	s.logger.WithField("user_id", session.User.ID).Info("admin logged in")

	s.jsonResponse(w, http.StatusOK, types.LoginResponse{
		Success: true,
		User:    toAPIUser(&session.User),
	})
}

// handleLogout clears the session cookies. It succeeds without a session.
func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	s.clearSessionCookies(w)
	s.successResponse(w, http.StatusOK, nil)
}

// handleMe reports the current admin, or {"user": null} with 401.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromRequest(r)
	if token == "" {
		s.jsonResponse(w, http.StatusUnauthorized, types.MeResponse{})
		return
	}

	user, err := s.identity.Verify(r.Context(), token)
	if err != nil || user == nil {
		s.jsonResponse(w, http.StatusUnauthorized, types.MeResponse{})
		return
	}
	s.jsonResponse(w, http.StatusOK, types.MeResponse{User: toAPIUser(user)})
}

func (s *Server) setSessionCookies(w http.ResponseWriter, access, refresh string) {
	maxAge := int(sessionCookieMaxAge.Seconds())
	http.SetCookie(w, s.sessionCookie(middleware.AccessTokenCookie, access, maxAge))
	if refresh != "" {
		http.SetCookie(w, s.sessionCookie(RefreshTokenCookie, refresh, maxAge))
	}
}

func (s *Server) clearSessionCookies(w http.ResponseWriter) {
	http.SetCookie(w, s.sessionCookie(middleware.AccessTokenCookie, "", -1))
	http.SetCookie(w, s.sessionCookie(RefreshTokenCookie, "", -1))
}

func (s *Server) sessionCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func toAPIUser(u *identity.User) *types.User {
	return &types.User{ID: u.ID, Email: u.Email}
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return "validation error: " + ve.Field() + " - " + ve.Tag()
		}
	}
	return "validation error: invalid request"
}
