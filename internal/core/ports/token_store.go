package ports

import (
	"context"

	"github.com/tripdesk/travio-gateway/internal/core/domain"
)

// TokenStore persists the cached bearer token across process restarts.
// The token cache is the only durable state this system keeps.
type TokenStore interface {
	// Load returns the stored token, or a zero token when none is cached.
	Load(ctx context.Context) (domain.Token, error)
	Save(ctx context.Context, token domain.Token) error
}
