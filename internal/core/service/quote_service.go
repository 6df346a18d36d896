package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tripdesk/travio-gateway/internal/core/domain"
	"github.com/tripdesk/travio-gateway/internal/core/ports"
)

// defaultQuoteTemplate is the print template every account has configured.
// Custom templates may not exist for a given account; delivery falls back to
// this one when the upstream rejects the requested template.
const defaultQuoteTemplate = 2

// QuoteService finalizes carts into reservations and triggers quote delivery.
type QuoteService struct {
	upstream ports.Upstream
	recorder ports.ActivityRecorder
	log      zerolog.Logger
}

var _ ports.QuoteService = (*QuoteService)(nil)

func NewQuoteService(upstream ports.Upstream, recorder ports.ActivityRecorder, log zerolog.Logger) *QuoteService {
	return &QuoteService{upstream: upstream, recorder: recorder, log: log}
}

func (s *QuoteService) Place(ctx context.Context, cartID string, in ports.PlaceReservationInput) (map[string]any, error) {
	endpoint := "/booking/place/" + cartID
	payload := placePayload(in)

	response, err := s.upstream.PlaceReservation(ctx, cartID, payload)
	if err != nil {
		recordFailure(s.recorder, "quote.place", "POST", endpoint, payload, err)
		return nil, err
	}

	recordSuccess(s.recorder, "quote.place", "POST", endpoint, payload, response)
	return response, nil
}

// Send triggers quote generation for a reservation. When the upstream
// reports the requested template as missing, it retries exactly once with
// the default template and flags the response so the caller knows the quote
// was not rendered with the template it asked for.
func (s *QuoteService) Send(ctx context.Context, reservationID int, in ports.QuoteDeliveryInput) (map[string]any, error) {
	endpoint := "/tools/print/reservation/" + strconv.Itoa(reservationID)
	payload := deliveryPayload(in)

	response, err := s.upstream.SendQuote(ctx, reservationID, payload)
	if err == nil {
		recordSuccess(s.recorder, "quote.send", "POST", endpoint, payload, response)
		return response, nil
	}

	// The first attempt already sent the default template when none was
	// requested, so retrying with it again would be a no-op.
	requested, _ := payload["template"].(int)
	recordFailure(s.recorder, "quote.send", "POST", endpoint, payload, err)
	if !isMissingTemplate(err) || requested == defaultQuoteTemplate {
		return nil, err
	}

	s.log.Warn().
		Int("reservation_id", reservationID).
		Int("template", requested).
		Msg("quote template missing, retrying with default template")

	fallback := in
	fallback.Template = defaultQuoteTemplate
	payload = deliveryPayload(fallback)

	response, err = s.upstream.SendQuote(ctx, reservationID, payload)
	if err != nil {
		recordFailure(s.recorder, "quote.send", "POST", endpoint, payload, err)
		return nil, err
	}

	if response == nil {
		response = map[string]any{}
	}
	response["template_fallback"] = true
	recordSuccess(s.recorder, "quote.send", "POST", endpoint, payload, response)
	return response, nil
}

func isMissingTemplate(err error) bool {
	var re *domain.RequestError
	return errors.As(err, &re) && strings.Contains(re.Body, "Template not found")
}

func placePayload(in ports.PlaceReservationInput) map[string]any {
	payload := map[string]any{"pax": in.Pax}
	if in.Status != nil {
		payload["status"] = *in.Status
	}
	if in.Due != "" {
		payload["due"] = in.Due
	}
	if len(in.Notes) > 0 {
		payload["notes"] = in.Notes
	}
	if in.Description != "" {
		payload["description"] = in.Description
	}
	if in.Reference != "" {
		payload["reference"] = in.Reference
	}
	if in.PaymentLink != nil {
		payload["payment_link"] = *in.PaymentLink
	}
	if in.ClientID != 0 {
		payload["client"] = in.ClientID
	}
	return payload
}

func deliveryPayload(in ports.QuoteDeliveryInput) map[string]any {
	template := in.Template
	if template == 0 {
		template = defaultQuoteTemplate
	}
	payload := map[string]any{"template": template}
	if in.Archive != nil {
		payload["archive"] = *in.Archive
	}
	if in.Send != nil {
		payload["send"] = *in.Send
	}
	return payload
}
