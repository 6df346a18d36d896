package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/tripdesk/travio-gateway/internal/core/domain"
)

type stubAuthService struct {
	issueTokenFn func(ctx context.Context) (string, error)
	profileFn    func(ctx context.Context) (map[string]any, error)
	loginFn      func(ctx context.Context, credentials map[string]any) (map[string]any, error)
}

func (s *stubAuthService) IssueToken(ctx context.Context) (string, error) {
	return s.issueTokenFn(ctx)
}

func (s *stubAuthService) Profile(ctx context.Context) (map[string]any, error) {
	return s.profileFn(ctx)
}

func (s *stubAuthService) Login(ctx context.Context, credentials map[string]any) (map[string]any, error) {
	return s.loginFn(ctx, credentials)
}

func TestAuthHandler_Token_Success(t *testing.T) {
	stub := &stubAuthService{
		issueTokenFn: func(ctx context.Context) (string, error) { return "token123", nil },
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/auth/token", "")
	if err := h.Token(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Token_UpstreamFailure(t *testing.T) {
	stub := &stubAuthService{
		issueTokenFn: func(ctx context.Context) (string, error) {
			return "", &domain.AuthError{StatusCode: 403, Body: "bad key"}
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/auth/token", "")
	err := h.Token(c)
	if code := httpErrorCode(t, err); code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", code)
	}
}

func TestAuthHandler_Profile_UpstreamFailure(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(ctx context.Context) (map[string]any, error) {
			return nil, &domain.RequestError{StatusCode: 500, Body: "boom"}
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(http.MethodGet, "/auth/profile", "")
	err := h.Profile(c)
	if code := httpErrorCode(t, err); code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, credentials map[string]any) (map[string]any, error) {
			if credentials["username"] != "agent@example.com" {
				t.Fatalf("unexpected credentials: %v", credentials)
			}
			return map[string]any{"token": "session"}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/auth/login",
		`{"username":"agent@example.com","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_UpstreamRejection(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, _ map[string]any) (map[string]any, error) {
			return nil, &domain.AuthError{StatusCode: 401, Body: "nope"}
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/auth/login",
		`{"username":"agent@example.com","password":"bad"}`)
	err := h.Login(c)
	if code := httpErrorCode(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, _ map[string]any) (map[string]any, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/auth/login", `{"username":"agent@example.com"}`)
	err := h.Login(c)
	if code := httpErrorCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}
