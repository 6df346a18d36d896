package ports

import "context"

// Upstream is the forwarding contract against the Travio API. The live
// implementation handles token lifecycle and HTTP transport; a mock
// implementation serves deterministic canned data for local development.
//
// Responses are passed through as open JSON values: the upstream schema is
// externally owned and evolving, so only the fields this system actively
// reads are ever inspected.
type Upstream interface {
	// Authenticate returns a valid bearer token, reusing the cached one
	// when it has not expired.
	Authenticate(ctx context.Context) (string, error)
	GetProfile(ctx context.Context) (map[string]any, error)
	Login(ctx context.Context, credentials map[string]any) (map[string]any, error)

	SearchClients(ctx context.Context, params map[string]string) (map[string]any, error)
	GetClient(ctx context.Context, clientID int) (map[string]any, error)
	CreateClient(ctx context.Context, payload map[string]any) (map[string]any, error)
	UpdateClient(ctx context.Context, clientID int, payload map[string]any) (map[string]any, error)
	ListCategories(ctx context.Context, page, perPage int) (map[string]any, error)
	ListDestinations(ctx context.Context, page, perPage int) (map[string]any, error)

	BookingSearch(ctx context.Context, payload map[string]any) (map[string]any, error)
	BookingResults(ctx context.Context, payload map[string]any) (map[string]any, error)
	BookingPicks(ctx context.Context, payload map[string]any) (map[string]any, error)
	CartAdd(ctx context.Context, payload map[string]any) (map[string]any, error)
	CartGet(ctx context.Context, cartID string) (map[string]any, error)
	CartRemove(ctx context.Context, payload map[string]any) (map[string]any, error)
	PlaceReservation(ctx context.Context, cartID string, payload map[string]any) (map[string]any, error)
	SendQuote(ctx context.Context, reservationID int, payload map[string]any) (map[string]any, error)

	// Close releases pooled connections on shutdown.
	Close() error
}
