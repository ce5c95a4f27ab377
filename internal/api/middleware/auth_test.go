package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/events-api/internal/core/domain"
)

type stubVerifier struct {
	user *domain.User
	err  error
}

func (v *stubVerifier) Authenticate(context.Context, string) (*domain.User, error) {
	return v.user, v.err
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return c, mw(next)(c)
}

func TestAuthMissingHeader(t *testing.T) {
	_, err := invoke(t, Auth(&stubVerifier{}), "")

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthMalformedHeader(t *testing.T) {
	for _, header := range []string{"token-without-scheme", "Basic abc"} {
		_, err := invoke(t, Auth(&stubVerifier{}), header)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %v", header, err)
		}
	}
}

func TestAuthInvalidToken(t *testing.T) {
	_, err := invoke(t, Auth(&stubVerifier{err: domain.ErrInvalidToken}), "Bearer bad")

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthUnverifiedAccount(t *testing.T) {
	_, err := invoke(t, Auth(&stubVerifier{err: domain.ErrAccountNotVerified}), "Bearer ok")

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestAuthInjectsPrincipal(t *testing.T) {
	user := &domain.User{ID: "1", Username: "alice", Role: domain.RoleAdmin}
	c, err := invoke(t, Auth(&stubVerifier{user: user}), "bearer token")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	got, _ := c.Get("user").(*domain.User)
	if got == nil || got.Username != "alice" {
		t.Errorf("principal not injected: %+v", got)
	}
	if role, _ := c.Get("role").(string); role != domain.RoleAdmin {
		t.Errorf("role not injected: %q", role)
	}
}
