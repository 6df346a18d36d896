package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tripdesk/travio-gateway/internal/core/ports"
)

// BookingHandler handles the multi-step booking flow. All flow state lives
// upstream; these endpoints only shuttle opaque ids and payloads.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// --- Request types ---

type bookingSearchRequest struct {
	Type          string           `json:"type" validate:"required"`
	From          string           `json:"from" validate:"required"`
	To            string           `json:"to" validate:"required"`
	Geo           []int            `json:"geo"`
	IDs           []string         `json:"ids"`
	Codes         []string         `json:"codes"`
	Occupancy     []map[string]any `json:"occupancy" validate:"required,min=1"`
	PerPage       int              `json:"per_page"`
	ReturnFilters []string         `json:"return_filters"`
	SortBy        []map[string]any `json:"sort_by"`
	Cart          string           `json:"cart"`
	ClientCountry string           `json:"client_country"`
}

type bookingResultsRequest struct {
	SearchID string           `json:"search_id" validate:"required"`
	Page     int              `json:"page"`
	PerPage  int              `json:"per_page"`
	Filters  []map[string]any `json:"filters"`
	SortBy   []map[string]any `json:"sort_by"`
}

type bookingPicksRequest struct {
	SearchID string           `json:"search_id" validate:"required"`
	Step     int              `json:"step"`
	Picks    []map[string]any `json:"picks" validate:"required"`
	PerPage  int              `json:"per_page"`
}

type cartMutationRequest struct {
	SearchID string `json:"search_id" validate:"required"`
}

// Search handles POST /booking/search.
func (h *BookingHandler) Search(c echo.Context) error {
	var req bookingSearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.service.Search(c.Request().Context(), ports.BookingSearchInput{
		Type:          req.Type,
		From:          req.From,
		To:            req.To,
		Geo:           req.Geo,
		IDs:           req.IDs,
		Codes:         req.Codes,
		Occupancy:     req.Occupancy,
		PerPage:       req.PerPage,
		ReturnFilters: req.ReturnFilters,
		SortBy:        req.SortBy,
		Cart:          req.Cart,
		ClientCountry: req.ClientCountry,
	})
	if err != nil {
		if isUpstreamError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, withUpstreamBody("Booking search failed", err))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Unexpected booking search error")
	}

	return c.JSON(http.StatusOK, response)
}

// Results handles POST /booking/results.
func (h *BookingHandler) Results(c echo.Context) error {
	var req bookingResultsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.service.Results(c.Request().Context(), ports.BookingResultsInput{
		SearchID: req.SearchID,
		Page:     req.Page,
		PerPage:  req.PerPage,
		Filters:  req.Filters,
		SortBy:   req.SortBy,
	})
	if err != nil {
		if isUpstreamError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, withUpstreamBody("Booking results fetch failed", err))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Unexpected booking results error")
	}

	return c.JSON(http.StatusOK, response)
}

// Picks handles POST /booking/picks.
func (h *BookingHandler) Picks(c echo.Context) error {
	var req bookingPicksRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.service.Picks(c.Request().Context(), ports.BookingPicksInput{
		SearchID: req.SearchID,
		Step:     req.Step,
		Picks:    req.Picks,
		PerPage:  req.PerPage,
	})
	if err != nil {
		if isUpstreamError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, withUpstreamBody("Booking picks failed", err))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Unexpected booking picks error")
	}

	return c.JSON(http.StatusOK, response)
}

// CartAdd handles PUT /booking/cart.
func (h *BookingHandler) CartAdd(c echo.Context) error {
	var req cartMutationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.service.CartAdd(c.Request().Context(), req.SearchID)
	if err != nil {
		if isUpstreamError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, withUpstreamBody("Failed to add to cart", err))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Unexpected cart add error")
	}

	return c.JSON(http.StatusOK, response)
}

// CartGet handles GET /booking/cart/:id.
func (h *BookingHandler) CartGet(c echo.Context) error {
	cartID := c.Param("id")
	if cartID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid cart id")
	}

	response, err := h.service.CartGet(c.Request().Context(), cartID)
	if err != nil {
		if isUpstreamError(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Cart not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Unexpected cart retrieval error")
	}

	return c.JSON(http.StatusOK, response)
}

// CartRemove handles DELETE /booking/cart.
func (h *BookingHandler) CartRemove(c echo.Context) error {
	var req cartMutationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.service.CartRemove(c.Request().Context(), req.SearchID)
	if err != nil {
		if isUpstreamError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to remove from cart")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Unexpected cart removal error")
	}

	return c.JSON(http.StatusOK, response)
}
