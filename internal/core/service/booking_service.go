package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tripdesk/travio-gateway/internal/core/ports"
)

// BookingService forwards the upstream-owned booking flow. All flow state
// (steps, remaining groups, finality) lives upstream and is referenced only
// by the opaque search_id; nothing is reconstructable after a restart.
type BookingService struct {
	upstream ports.Upstream
	recorder ports.ActivityRecorder
	log      zerolog.Logger
}

var _ ports.BookingService = (*BookingService)(nil)

func NewBookingService(upstream ports.Upstream, recorder ports.ActivityRecorder, log zerolog.Logger) *BookingService {
	return &BookingService{upstream: upstream, recorder: recorder, log: log}
}

func (s *BookingService) Search(ctx context.Context, in ports.BookingSearchInput) (map[string]any, error) {
	payload := searchPayload(in)

	response, err := s.upstream.BookingSearch(ctx, payload)
	if err != nil {
		recordFailure(s.recorder, "booking.search", "POST", "/booking/search", payload, err)
		return nil, err
	}

	recordSuccess(s.recorder, "booking.search", "POST", "/booking/search", payload, response)
	return response, nil
}

func (s *BookingService) Results(ctx context.Context, in ports.BookingResultsInput) (map[string]any, error) {
	payload := resultsPayload(in)

	response, err := s.upstream.BookingResults(ctx, payload)
	if err != nil {
		recordFailure(s.recorder, "booking.results", "POST", "/booking/results", payload, err)
		return nil, err
	}

	recordSuccess(s.recorder, "booking.results", "POST", "/booking/results", payload, response)
	return response, nil
}

// Picks passes accumulated picks through without validating their structure:
// the upstream response's groups array is trusted to describe the remaining
// decision points on every step.
func (s *BookingService) Picks(ctx context.Context, in ports.BookingPicksInput) (map[string]any, error) {
	payload := picksPayload(in)

	response, err := s.upstream.BookingPicks(ctx, payload)
	if err != nil {
		recordFailure(s.recorder, "booking.picks", "POST", "/booking/picks", payload, err)
		return nil, err
	}

	recordSuccess(s.recorder, "booking.picks", "POST", "/booking/picks", payload, response)
	return response, nil
}

func (s *BookingService) CartAdd(ctx context.Context, searchID string) (map[string]any, error) {
	payload := map[string]any{"search_id": searchID}

	response, err := s.upstream.CartAdd(ctx, payload)
	if err != nil {
		recordFailure(s.recorder, "booking.cart_add", "PUT", "/booking/cart", payload, err)
		return nil, err
	}

	recordSuccess(s.recorder, "booking.cart_add", "PUT", "/booking/cart", payload, response)
	return response, nil
}

func (s *BookingService) CartGet(ctx context.Context, cartID string) (map[string]any, error) {
	endpoint := "/booking/cart/" + cartID

	response, err := s.upstream.CartGet(ctx, cartID)
	if err != nil {
		recordFailure(s.recorder, "booking.cart_get", "GET", endpoint, nil, err)
		return nil, err
	}

	recordSuccess(s.recorder, "booking.cart_get", "GET", endpoint, nil, response)
	return response, nil
}

func (s *BookingService) CartRemove(ctx context.Context, searchID string) (map[string]any, error) {
	payload := map[string]any{"search_id": searchID}

	response, err := s.upstream.CartRemove(ctx, payload)
	if err != nil {
		recordFailure(s.recorder, "booking.cart_remove", "DELETE", "/booking/cart", payload, err)
		return nil, err
	}

	recordSuccess(s.recorder, "booking.cart_remove", "DELETE", "/booking/cart", payload, response)
	return response, nil
}

// --- Payload builders ---

func searchPayload(in ports.BookingSearchInput) map[string]any {
	payload := map[string]any{
		"type":      in.Type,
		"from":      in.From,
		"to":        in.To,
		"occupancy": in.Occupancy,
	}
	if in.Geo != nil {
		payload["geo"] = in.Geo
	}
	if in.IDs != nil {
		payload["ids"] = in.IDs
	}
	if in.Codes != nil {
		payload["codes"] = in.Codes
	}
	if in.PerPage != 0 {
		payload["per_page"] = in.PerPage
	}
	if len(in.ReturnFilters) > 0 {
		payload["return_filters"] = in.ReturnFilters
	}
	if len(in.SortBy) > 0 {
		payload["sort_by"] = in.SortBy
	}
	if in.Cart != "" {
		payload["cart"] = in.Cart
	}
	if in.ClientCountry != "" {
		payload["client_country"] = in.ClientCountry
	}
	return payload
}

func resultsPayload(in ports.BookingResultsInput) map[string]any {
	payload := map[string]any{
		"search_id": in.SearchID,
		"page":      in.Page,
	}
	if in.PerPage != 0 {
		payload["per_page"] = in.PerPage
	}
	if len(in.Filters) > 0 {
		payload["filters"] = in.Filters
	}
	if len(in.SortBy) > 0 {
		payload["sort_by"] = in.SortBy
	}
	return payload
}

func picksPayload(in ports.BookingPicksInput) map[string]any {
	payload := map[string]any{
		"search_id": in.SearchID,
		"step":      in.Step,
		"picks":     in.Picks,
	}
	if in.PerPage != 0 {
		payload["per_page"] = in.PerPage
	}
	return payload
}
