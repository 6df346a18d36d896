package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tripdesk/travio-gateway/internal/core/domain"
)

func TestAuthService_IssueToken_RedactsValue(t *testing.T) {
	upstream := &stubUpstream{
		authenticateFn: func(_ context.Context) (string, error) { return "secret-token", nil },
	}
	recorder := NewActivityRecorder("test")
	svc := NewAuthService(upstream, recorder, zerolog.Nop())

	token, err := svc.IssueToken(context.Background())
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if token != "secret-token" {
		t.Fatalf("caller must receive the real token, got %q", token)
	}

	entries := recorder.List(0)
	response := entries[0].Response.(map[string]any)
	if response["token"] != redactedToken {
		t.Fatalf("token leaked into activity log: %v", response)
	}
}

func TestAuthService_Login_RecordsUsernameOnly(t *testing.T) {
	upstream := &stubUpstream{
		loginFn: func(_ context.Context, _ map[string]any) (map[string]any, error) {
			return map[string]any{"token": "session-token"}, nil
		},
	}
	recorder := NewActivityRecorder("test")
	svc := NewAuthService(upstream, recorder, zerolog.Nop())

	result, err := svc.Login(context.Background(), map[string]any{
		"username": "agent@example.com",
		"password": "hunter2",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result["token"] != "session-token" {
		t.Fatalf("caller must receive the session token, got %v", result)
	}

	entry := recorder.List(0)[0]
	if entry.Payload["username"] != "agent@example.com" {
		t.Fatalf("username missing from recorded payload: %v", entry.Payload)
	}
	if _, ok := entry.Payload["password"]; ok {
		t.Fatalf("password leaked into activity log")
	}
	if entry.Response.(map[string]any)["token"] != redactedToken {
		t.Fatalf("session token leaked into activity log")
	}
}

func TestAuthService_Login_FailureRecorded(t *testing.T) {
	upstream := &stubUpstream{
		loginFn: func(_ context.Context, _ map[string]any) (map[string]any, error) {
			return nil, &domain.AuthError{StatusCode: 401, Body: "bad credentials"}
		},
	}
	recorder := NewActivityRecorder("test")
	svc := NewAuthService(upstream, recorder, zerolog.Nop())

	if _, err := svc.Login(context.Background(), map[string]any{"username": "x"}); err == nil {
		t.Fatalf("expected error")
	}

	entry := recorder.List(0)[0]
	if entry.Status != domain.ActivityError {
		t.Fatalf("failure not recorded as error: %+v", entry)
	}
	response := entry.Response.(map[string]any)
	if response["status_code"] != 401 {
		t.Fatalf("expected recorded status 401, got %v", response["status_code"])
	}
}
