package ports

import "context"

// BookingSearchInput starts a new upstream search flow.
type BookingSearchInput struct {
	Type          string
	From          string
	To            string
	Geo           []int
	IDs           []string
	Codes         []string
	Occupancy     []map[string]any
	PerPage       int
	ReturnFilters []string
	SortBy        []map[string]any
	Cart          string
	ClientCountry string
}

// BookingResultsInput pages through results of an existing search.
type BookingResultsInput struct {
	SearchID string
	Page     int
	PerPage  int
	Filters  []map[string]any
	SortBy   []map[string]any
}

// BookingPicksInput submits accumulated picks for a search step. Pick
// structure is not validated here: the upstream owns the flow state and
// its response's groups array describes the remaining decision points.
type BookingPicksInput struct {
	SearchID string
	Step     int
	Picks    []map[string]any
	PerPage  int
}

// BookingService forwards the upstream-owned multi-step booking flow.
type BookingService interface {
	Search(ctx context.Context, in BookingSearchInput) (map[string]any, error)
	Results(ctx context.Context, in BookingResultsInput) (map[string]any, error)
	Picks(ctx context.Context, in BookingPicksInput) (map[string]any, error)
	CartAdd(ctx context.Context, searchID string) (map[string]any, error)
	CartGet(ctx context.Context, cartID string) (map[string]any, error)
	CartRemove(ctx context.Context, searchID string) (map[string]any, error)
}
