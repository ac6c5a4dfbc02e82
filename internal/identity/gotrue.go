package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	gotrue "github.com/supabase-community/gotrue-go"
	gotruetypes "github.com/supabase-community/gotrue-go/types"
)

const gotrueTimeout = 15 * time.Second

// GoTrue delegates sign-in and token verification to a hosted GoTrue
// (Supabase Auth) instance.
type GoTrue struct {
	client gotrue.Client
}

// NewGoTrue creates a GoTrue provider for the instance at baseURL.
func NewGoTrue(baseURL, apiKey string) *GoTrue {
	// The project reference is unused once a custom URL is set.
	client := gotrue.New("", apiKey).
		WithCustomGoTrueURL(strings.TrimRight(baseURL, "/")).
		WithClient(http.Client{Timeout: gotrueTimeout})
	return &GoTrue{client: client}
}

// SignIn exchanges an email and password for a session.
func (g *GoTrue) SignIn(ctx context.Context, email, password string) (*Session, error) {
	tok, err := g.withContext(ctx).SignInWithEmailPassword(email, password)
	if err != nil {
		if errors.Is(err, gotruetypes.ErrInvalidTokenRequest) {
			return nil, &ErrInvalidCredentials{}
		}
		switch code, ok := statusCode(err); {
		case ok && (code == http.StatusBadRequest || code == http.StatusUnauthorized):
			return nil, &ErrInvalidCredentials{}
		case ok:
			return nil, fmt.Errorf("identity service sign-in failed: %w", err)
		}
		return nil, fmt.Errorf("identity service request failed: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("sign-in response has no access token")
	}

	return &Session{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresIn:    tok.ExpiresIn,
		User:         User{ID: tok.User.ID.String(), Email: tok.User.Email},
	}, nil
}

// Verify resolves an access token to the user it was issued for.
func (g *GoTrue) Verify(ctx context.Context, accessToken string) (*User, error) {
	if accessToken == "" {
		return nil, ErrUnauthenticated
	}

	u, err := g.withContext(ctx).WithToken(accessToken).GetUser()
	if err != nil {
		switch code, ok := statusCode(err); {
		case ok && (code == http.StatusUnauthorized || code == http.StatusForbidden):
			return nil, ErrUnauthenticated
		case ok:
			return nil, fmt.Errorf("identity service user lookup failed: %w", err)
		}
		return nil, fmt.Errorf("identity service request failed: %w", err)
	}
	if u.ID == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	return &User{ID: u.ID.String(), Email: u.Email}, nil
}

// withContext returns a client whose requests carry ctx.
func (g *GoTrue) withContext(ctx context.Context) gotrue.Client {
	return g.client.WithClient(http.Client{
		Timeout:   gotrueTimeout,
		Transport: contextTransport{ctx: ctx, base: http.DefaultTransport},
	})
}

type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

// statusCode extracts the HTTP status from a gotrue-go response error.
func statusCode(err error) (int, bool) {
	var code int
	if _, scanErr := fmt.Sscanf(err.Error(), "response status code %d", &code); scanErr != nil {
		return 0, false
	}
	return code, true
}
