package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tripdesk/travio-gateway/internal/core/ports"
)

// QuoteHandler finalizes carts into reservations and triggers quote delivery.
type QuoteHandler struct {
	service ports.QuoteService
}

func NewQuoteHandler(service ports.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// --- Request types ---

type placeReservationRequest struct {
	Pax         []map[string]any `json:"pax" validate:"required,min=1"`
	Status      *int             `json:"status"`
	Due         string           `json:"due"`
	Notes       []map[string]any `json:"notes"`
	Description string           `json:"description"`
	Reference   string           `json:"reference"`
	PaymentLink *bool            `json:"payment_link"`
	ClientID    int              `json:"client_id"`
}

type quoteDeliveryRequest struct {
	Template int   `json:"template" validate:"required"`
	Archive  *bool `json:"archive"`
	Send     *bool `json:"send"`
}

// Place handles POST /quotes/place/:cart_id.
func (h *QuoteHandler) Place(c echo.Context) error {
	cartID := c.Param("cart_id")
	if cartID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid cart id")
	}

	var req placeReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.service.Place(c.Request().Context(), cartID, ports.PlaceReservationInput{
		Pax:         req.Pax,
		Status:      req.Status,
		Due:         req.Due,
		Notes:       req.Notes,
		Description: req.Description,
		Reference:   req.Reference,
		PaymentLink: req.PaymentLink,
		ClientID:    req.ClientID,
	})
	if err != nil {
		if isUpstreamError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, withUpstreamBody("Failed to place reservation", err))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Unexpected reservation error")
	}

	return c.JSON(http.StatusOK, response)
}

// Send handles POST /quotes/send/:reservation_id.
func (h *QuoteHandler) Send(c echo.Context) error {
	reservationID, err := strconv.Atoi(c.Param("reservation_id"))
	if err != nil || reservationID < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	var req quoteDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.service.Send(c.Request().Context(), reservationID, ports.QuoteDeliveryInput{
		Template: req.Template,
		Archive:  req.Archive,
		Send:     req.Send,
	})
	if err != nil {
		if isUpstreamError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, withUpstreamBody("Failed to send quote", err))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Unexpected quote delivery error")
	}

	return c.JSON(http.StatusOK, response)
}
