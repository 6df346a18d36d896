package ports

import "context"

// PlaceReservationInput finalizes a cart into a reservation or quote.
type PlaceReservationInput struct {
	Pax         []map[string]any
	Status      *int
	Due         string
	Notes       []map[string]any
	Description string
	Reference   string
	PaymentLink *bool
	ClientID    int
}

// QuoteDeliveryInput triggers quote PDF/email generation upstream.
type QuoteDeliveryInput struct {
	Template int
	Archive  *bool
	Send     *bool
}

// QuoteService places reservations and delivers quotes.
type QuoteService interface {
	Place(ctx context.Context, cartID string, in PlaceReservationInput) (map[string]any, error)
	// Send delivers the quote; when the upstream reports the template as
	// missing it retries exactly once with the default template.
	Send(ctx context.Context, reservationID int, in QuoteDeliveryInput) (map[string]any, error)
}
