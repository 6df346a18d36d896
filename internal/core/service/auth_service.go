package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tripdesk/travio-gateway/internal/core/ports"
)

// AuthService forwards token, profile and login operations to the upstream.
type AuthService struct {
	upstream ports.Upstream
	recorder ports.ActivityRecorder
	log      zerolog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(upstream ports.Upstream, recorder ports.ActivityRecorder, log zerolog.Logger) *AuthService {
	return &AuthService{upstream: upstream, recorder: recorder, log: log}
}

// IssueToken fetches (or reuses) a bearer token using the configured
// credentials. The token value is redacted in the activity log.
func (s *AuthService) IssueToken(ctx context.Context) (string, error) {
	token, err := s.upstream.Authenticate(ctx)
	if err != nil {
		recordFailure(s.recorder, "authenticate", "POST", "/auth", nil, err)
		return "", err
	}

	recordSuccess(s.recorder, "authenticate", "POST", "/auth", nil, map[string]any{"token": redactedToken})
	return token, nil
}

func (s *AuthService) Profile(ctx context.Context) (map[string]any, error) {
	profile, err := s.upstream.GetProfile(ctx)
	if err != nil {
		recordFailure(s.recorder, "profile", "GET", "/profile", nil, err)
		return nil, err
	}

	recordSuccess(s.recorder, "profile", "GET", "/profile", nil, profile)
	return profile, nil
}

// Login authenticates upstream user credentials. On success only the
// username is kept in the activity payload and the session token is
// redacted from the recorded response.
func (s *AuthService) Login(ctx context.Context, credentials map[string]any) (map[string]any, error) {
	result, err := s.upstream.Login(ctx, credentials)
	if err != nil {
		recordFailure(s.recorder, "login", "POST", "/login", credentials, err)
		return nil, err
	}

	recordSuccess(s.recorder, "login", "POST", "/login",
		map[string]any{"username": credentials["username"]},
		map[string]any{"token": redactedToken},
	)
	return result, nil
}
