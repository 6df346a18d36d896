package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tripdesk/travio-gateway/internal/core/domain"
	"github.com/tripdesk/travio-gateway/internal/core/ports"
)

// SystemHandler exposes the dashboard's service-info and activity-log
// endpoints.
type SystemHandler struct {
	recorder ports.ActivityRecorder
	appName  string
	useMock  bool
	language string
}

func NewSystemHandler(recorder ports.ActivityRecorder, appName string, useMock bool, language string) *SystemHandler {
	return &SystemHandler{
		recorder: recorder,
		appName:  appName,
		useMock:  useMock,
		language: language,
	}
}

// Health handles GET /system/health: basic service info for the dashboard.
func (h *SystemHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":        "ok",
		"app_name":      h.appName,
		"use_mock_data": h.useMock,
		"language":      h.language,
	})
}

// Activity handles GET /system/activity?limit=.
func (h *SystemHandler) Activity(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	entries := h.recorder.List(limit)
	if entries == nil {
		entries = []domain.ActivityEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

// ClearActivity handles DELETE /system/activity.
func (h *SystemHandler) ClearActivity(c echo.Context) error {
	h.recorder.Clear()
	return c.JSON(http.StatusOK, map[string]string{"status": "cleared"})
}
