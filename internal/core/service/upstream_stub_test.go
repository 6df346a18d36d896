package service

import (
	"context"

	"github.com/tripdesk/travio-gateway/internal/core/ports"
)

// stubUpstream lets each test override only the calls it cares about.
// Unset functions return an empty map.
type stubUpstream struct {
	authenticateFn     func(ctx context.Context) (string, error)
	getProfileFn       func(ctx context.Context) (map[string]any, error)
	loginFn            func(ctx context.Context, credentials map[string]any) (map[string]any, error)
	searchClientsFn    func(ctx context.Context, params map[string]string) (map[string]any, error)
	getClientFn        func(ctx context.Context, clientID int) (map[string]any, error)
	createClientFn     func(ctx context.Context, payload map[string]any) (map[string]any, error)
	updateClientFn     func(ctx context.Context, clientID int, payload map[string]any) (map[string]any, error)
	listCategoriesFn   func(ctx context.Context, page, perPage int) (map[string]any, error)
	listDestinationsFn func(ctx context.Context, page, perPage int) (map[string]any, error)
	bookingSearchFn    func(ctx context.Context, payload map[string]any) (map[string]any, error)
	bookingResultsFn   func(ctx context.Context, payload map[string]any) (map[string]any, error)
	bookingPicksFn     func(ctx context.Context, payload map[string]any) (map[string]any, error)
	cartAddFn          func(ctx context.Context, payload map[string]any) (map[string]any, error)
	cartGetFn          func(ctx context.Context, cartID string) (map[string]any, error)
	cartRemoveFn       func(ctx context.Context, payload map[string]any) (map[string]any, error)
	placeFn            func(ctx context.Context, cartID string, payload map[string]any) (map[string]any, error)
	sendQuoteFn        func(ctx context.Context, reservationID int, payload map[string]any) (map[string]any, error)
}

var _ ports.Upstream = (*stubUpstream)(nil)

func (s *stubUpstream) Authenticate(ctx context.Context) (string, error) {
	if s.authenticateFn != nil {
		return s.authenticateFn(ctx)
	}
	return "stub-token", nil
}

func (s *stubUpstream) GetProfile(ctx context.Context) (map[string]any, error) {
	if s.getProfileFn != nil {
		return s.getProfileFn(ctx)
	}
	return map[string]any{}, nil
}

func (s *stubUpstream) Login(ctx context.Context, credentials map[string]any) (map[string]any, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, credentials)
	}
	return map[string]any{}, nil
}

func (s *stubUpstream) SearchClients(ctx context.Context, params map[string]string) (map[string]any, error) {
	if s.searchClientsFn != nil {
		return s.searchClientsFn(ctx, params)
	}
	return map[string]any{}, nil
}

func (s *stubUpstream) GetClient(ctx context.Context, clientID int) (map[string]any, error) {
	if s.getClientFn != nil {
		return s.getClientFn(ctx, clientID)
	}
	return map[string]any{}, nil
}

func (s *stubUpstream) CreateClient(ctx context.Context, payload map[string]any) (map[string]any, error) {
	if s.createClientFn != nil {
		return s.createClientFn(ctx, payload)
	}
	return map[string]any{}, nil
}

func (s *stubUpstream) UpdateClient(ctx context.Context, clientID int, payload map[string]any) (map[string]any, error) {
	if s.updateClientFn != nil {
		return s.updateClientFn(ctx, clientID, payload)
	}
	return map[string]any{}, nil
}

func (s *stubUpstream) ListCategories(ctx context.Context, page, perPage int) (map[string]any, error) {
	if s.listCategoriesFn != nil {
		return s.listCategoriesFn(ctx, page, perPage)
	}
	return map[string]any{}, nil
}

func (s *stubUpstream) ListDestinations(ctx context.Context, page, perPage int) (map[string]any, error) {
	if s.listDestinationsFn != nil {
		return s.listDestinationsFn(ctx, page, perPage)
	}
	return map[string]any{}, nil
}

func (s *stubUpstream) BookingSearch(ctx context.Context, payload map[string]any) (map[string]any, error) {
	if s.bookingSearchFn != nil {
		return s.bookingSearchFn(ctx, payload)
	}
	return map[string]any{}, nil
}

func (s *stubUpstream) BookingResults(ctx context.Context, payload map[string]any) (map[string]any, error) {
	if s.bookingResultsFn != nil {
		return s.bookingResultsFn(ctx, payload)
	}
	return map[string]any{}, nil
}

func (s *stubUpstream) BookingPicks(ctx context.Context, payload map[string]any) (map[string]any, error) {
	if s.bookingPicksFn != nil {
		return s.bookingPicksFn(ctx, payload)
	}
	return map[string]any{}, nil
}

func (s *stubUpstream) CartAdd(ctx context.Context, payload map[string]any) (map[string]any, error) {
	if s.cartAddFn != nil {
		return s.cartAddFn(ctx, payload)
	}
	return map[string]any{}, nil
}

func (s *stubUpstream) CartGet(ctx context.Context, cartID string) (map[string]any, error) {
	if s.cartGetFn != nil {
		return s.cartGetFn(ctx, cartID)
	}
	return map[string]any{}, nil
}

func (s *stubUpstream) CartRemove(ctx context.Context, payload map[string]any) (map[string]any, error) {
	if s.cartRemoveFn != nil {
		return s.cartRemoveFn(ctx, payload)
	}
	return map[string]any{}, nil
}

func (s *stubUpstream) PlaceReservation(ctx context.Context, cartID string, payload map[string]any) (map[string]any, error) {
	if s.placeFn != nil {
		return s.placeFn(ctx, cartID, payload)
	}
	return map[string]any{}, nil
}

func (s *stubUpstream) SendQuote(ctx context.Context, reservationID int, payload map[string]any) (map[string]any, error) {
	if s.sendQuoteFn != nil {
		return s.sendQuoteFn(ctx, reservationID, payload)
	}
	return map[string]any{}, nil
}

func (s *stubUpstream) Close() error { return nil }
