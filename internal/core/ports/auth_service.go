package ports

import "context"

// AuthService exposes token and session operations against the upstream.
type AuthService interface {
	// IssueToken fetches (or reuses) a bearer token using the configured
	// id/key credentials.
	IssueToken(ctx context.Context) (string, error)
	// Profile returns the upstream profile for the current token.
	Profile(ctx context.Context) (map[string]any, error)
	// Login authenticates upstream user credentials and returns the
	// enriched session token response.
	Login(ctx context.Context, credentials map[string]any) (map[string]any, error)
}
