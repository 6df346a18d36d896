package ports

import "context"

// CRMSearchInput carries the dashboard's loosely-typed search request.
// Filters uses flat keys like "filter[email]", "filter[surname]",
// "filter[code]" and "filter[phone]".
type CRMSearchInput struct {
	Filters map[string]string
	Page    int
	PerPage int
	Unfold  string
}

// CRMService proxies the upstream master-data repository, translating
// field names and filters on the way in and out.
type CRMService interface {
	Search(ctx context.Context, in CRMSearchInput) (map[string]any, error)
	Get(ctx context.Context, clientID int) (map[string]any, error)
	// Create normalizes the payload and applies creation defaults.
	Create(ctx context.Context, data map[string]any) (map[string]any, error)
	// Update normalizes the payload without applying creation defaults.
	Update(ctx context.Context, clientID int, data map[string]any) (map[string]any, error)
	Categories(ctx context.Context, page, perPage int) (map[string]any, error)
}
