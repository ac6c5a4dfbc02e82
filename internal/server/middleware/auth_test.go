package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careers-portal/internal/identity"
)

// testVerifier accepts a fixed set of tokens.
type testVerifier struct {
	valid map[string]*identity.User
	err   error
}

func newTestVerifier() *testVerifier {
	return &testVerifier{valid: make(map[string]*identity.User)}
}

func (v *testVerifier) Verify(_ context.Context, token string) (*identity.User, error) {
	if v.err != nil {
		return nil, v.err
	}
	user, ok := v.valid[token]
	if !ok {
		return nil, identity.ErrUnauthenticated
	}
	return user, nil
}

func protected(t *testing.T, v SessionVerifier) (http.Handler, *bool, **identity.User) {
	t.Helper()
	called := false
	var seen *identity.User
	logger, _ := test.NewNullLogger()
	h := RequireSession(v, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		user, ok := GetUser(r)
		require.True(t, ok)
		seen = user
		w.WriteHeader(http.StatusOK)
	}))
	return h, &called, &seen
}

func TestRequireSession_Cookie(t *testing.T) {
	v := newTestVerifier()
	admin := &identity.User{ID: "u-1", Email: "admin@example.com"}
	v.valid["cookie-token"] = admin
	h, called, seen := protected(t, v)

	req := httptest.NewRequest(http.MethodGet, "/admin/jobs", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "cookie-token"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.True(t, *called)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, admin, *seen)
}

func TestRequireSession_BearerFallback(t *testing.T) {
	v := newTestVerifier()
	v.valid["header-token"] = &identity.User{ID: "u-2"}
	h, called, _ := protected(t, v)

	for _, header := range []string{"Bearer header-token", "bearer header-token", "BEARER header-token"} {
		*called = false
		req := httptest.NewRequest(http.MethodGet, "/admin/jobs", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.True(t, *called, header)
		assert.Equal(t, http.StatusOK, w.Code, header)
	}
}

func TestRequireSession_CookieWinsOverHeader(t *testing.T) {
	v := newTestVerifier()
	v.valid["cookie-token"] = &identity.User{ID: "from-cookie"}
	v.valid["header-token"] = &identity.User{ID: "from-header"}
	h, _, seen := protected(t, v)

	req := httptest.NewRequest(http.MethodGet, "/admin/jobs", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, *seen)
	assert.Equal(t, "from-cookie", (*seen).ID)
}

func TestRequireSession_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(r *http.Request)
		verErr error
	}{
		{name: "no credentials", setup: func(_ *http.Request) {}},
		{name: "unknown cookie", setup: func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "stale"})
		}},
		{name: "basic auth", setup: func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") }},
		{name: "bearer without token", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer") }},
		{name: "verifier failure", setup: func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer anything")
		}, verErr: errors.New("identity service down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestVerifier()
			v.err = tt.verErr
			h, called, _ := protected(t, v)

			req := httptest.NewRequest(http.MethodGet, "/admin/jobs", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.False(t, *called, "handler should not be called")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
		})
	}
}

func TestGetUser_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	user, ok := GetUser(req)
	assert.False(t, ok)
	assert.Nil(t, user)
}
