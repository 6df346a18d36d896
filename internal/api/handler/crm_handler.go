package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tripdesk/travio-gateway/internal/core/ports"
)

// CRMHandler handles client-repository requests.
type CRMHandler struct {
	service ports.CRMService
}

func NewCRMHandler(service ports.CRMService) *CRMHandler {
	return &CRMHandler{service: service}
}

// --- Request types ---

// crmSearchRequest accepts page_size as an alias for per_page; older
// dashboard builds still send it.
type crmSearchRequest struct {
	Filters  map[string]string `json:"filters"`
	Page     int               `json:"page"`
	PerPage  int               `json:"per_page"`
	PageSize int               `json:"page_size"`
	Unfold   string            `json:"unfold"`
}

func (r crmSearchRequest) perPage() int {
	if r.PageSize != 0 {
		return r.PageSize
	}
	return r.PerPage
}

// crmClientRequest wraps the loosely-typed client record; the dashboard
// sends whatever fields its form currently has.
type crmClientRequest struct {
	Data map[string]any `json:"data" validate:"required"`
}

// Search handles POST /crm/search.
func (h *CRMHandler) Search(c echo.Context) error {
	var req crmSearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Search(c.Request().Context(), ports.CRMSearchInput{
		Filters: req.Filters,
		Page:    req.Page,
		PerPage: req.perPage(),
		Unfold:  req.Unfold,
	})
	if err != nil {
		if isUpstreamError(err) {
			return echo.NewHTTPError(http.StatusBadGateway, "Travio CRM search failed")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Unexpected CRM search error")
	}

	return c.JSON(http.StatusOK, response)
}

// Get handles GET /crm/:id.
func (h *CRMHandler) Get(c echo.Context) error {
	clientID, err := strconv.Atoi(c.Param("id"))
	if err != nil || clientID < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid client id")
	}

	response, err := h.service.Get(c.Request().Context(), clientID)
	if err != nil {
		if isUpstreamError(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Client not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Unexpected client retrieval error")
	}

	return c.JSON(http.StatusOK, response)
}

// Create handles POST /crm.
func (h *CRMHandler) Create(c echo.Context) error {
	var req crmClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.service.Create(c.Request().Context(), req.Data)
	if err != nil {
		if isUpstreamError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, "Travio CRM create failed")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Unexpected CRM create error")
	}

	return c.JSON(http.StatusOK, response)
}

// Update handles PUT /crm/:id.
func (h *CRMHandler) Update(c echo.Context) error {
	clientID, err := strconv.Atoi(c.Param("id"))
	if err != nil || clientID < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid client id")
	}

	var req crmClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.service.Update(c.Request().Context(), clientID, req.Data)
	if err != nil {
		if isUpstreamError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, "Travio CRM update failed")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Unexpected CRM update error")
	}

	return c.JSON(http.StatusOK, response)
}

// Categories handles GET /crm/categories?page=&per_page=.
func (h *CRMHandler) Categories(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))

	response, err := h.service.Categories(c.Request().Context(), page, perPage)
	if err != nil {
		if isUpstreamError(err) {
			return echo.NewHTTPError(http.StatusBadGateway, "Travio CRM categories fetch failed")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Unexpected CRM categories error")
	}

	return c.JSON(http.StatusOK, response)
}
