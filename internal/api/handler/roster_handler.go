package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/staffboard/statusboard/internal/api/metrics"
	"github.com/staffboard/statusboard/internal/core/domain"
	"github.com/staffboard/statusboard/internal/core/ports"
	"github.com/staffboard/statusboard/internal/infrastructure/feed"
)

type RosterHandler struct {
	service ports.RosterService
	seeder  ports.Seeder
	hub     *feed.Hub
	logger  zerolog.Logger
}

func NewRosterHandler(service ports.RosterService, seeder ports.Seeder, hub *feed.Hub, logger zerolog.Logger) *RosterHandler {
	return &RosterHandler{service: service, seeder: seeder, hub: hub, logger: logger}
}

// List returns the full roster snapshot in store order.
//
// @Summary      Get the roster
// @Tags         roster
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  rosterView
// @Router       /api/roster [get]
func (h *RosterHandler) List(c echo.Context) error {
	records, err := h.service.Snapshot(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRosterView(records))
}

// UpdateStatus changes one record's availability.
//
// @Summary      Update availability status
// @Tags         roster
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Record id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  feedbackResponse
// @Failure      404   {object}  feedbackResponse
// @Failure      422   {object}  feedbackResponse
// @Router       /api/roster/{id}/status [patch]
func (h *RosterHandler) UpdateStatus(c echo.Context) error {
	if _, _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.UpdateStatus(c.Request().Context(), ports.UpdateStatusInput{
		RecordID:    c.Param("id"),
		DisplayName: req.DisplayName,
		Status:      req.Status,
	})
	if err != nil {
		status := http.StatusInternalServerError
		reason := "store_error"
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			status = http.StatusUnprocessableEntity
			reason = "invalid_status"
		case errors.Is(err, domain.ErrRecordNotFound):
			status = http.StatusNotFound
			reason = "not_found"
		}
		metrics.StatusUpdateErrorsTotal.WithLabelValues(reason).Inc()
		return c.JSON(status, feedbackResponse{
			Message: fmt.Sprintf("Update Error for %s: %s", req.DisplayName, err.Error()),
		})
	}

	metrics.StatusUpdatesTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, feedbackResponse{Message: result.Message})
}

// Stream delivers the live roster feed over Server-Sent Events. Every
// event carries the complete roster; the current snapshot is sent
// immediately on connect. The subscription is torn down when the client
// disconnects.
//
// @Summary      Live roster feed (SSE)
// @Tags         roster
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200  {string}  string  "event stream"
// @Router       /api/roster/stream [get]
func (h *RosterHandler) Stream(c echo.Context) error {
	sub := h.hub.Subscribe()
	defer sub.Unsubscribe()

	metrics.FeedSubscribers.Inc()
	defer metrics.FeedSubscribers.Dec()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	ctx := c.Request().Context()

	// Initial snapshot so the viewer renders without waiting for a change.
	if records, err := h.service.Snapshot(ctx); err != nil {
		h.writeEvent(res, "error", map[string]string{"error": err.Error()})
	} else {
		h.writeEvent(res, "roster", toRosterView(records))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-sub.C:
			if !ok {
				// Dropped by the hub as a slow subscriber; the client
				// reconnects and receives a fresh snapshot.
				return nil
			}
			if ev.Err != nil {
				h.writeEvent(res, "error", map[string]string{"error": ev.Err.Error()})
				continue
			}
			h.writeEvent(res, "roster", toRosterView(ev.Roster))
			metrics.FeedSnapshotsTotal.Inc()
		}
	}
}

// Seed populates an empty collection with the starter roster.
//
// @Summary      Seed the starter roster
// @Tags         roster
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  feedbackResponse
// @Router       /api/roster/seed [post]
func (h *RosterHandler) Seed(c echo.Context) error {
	if err := h.seeder.SeedIfEmpty(c.Request().Context()); err != nil {
		metrics.SeedRunsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.SeedRunsTotal.WithLabelValues("seeded").Inc()
	return c.JSON(http.StatusOK, feedbackResponse{Message: "Seeding complete."})
}

func (h *RosterHandler) writeEvent(res *echo.Response, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		h.logger.Error().Err(err).Msg("feed event marshal failed")
		return
	}
	fmt.Fprintf(res, "event: %s\ndata: %s\n\n", event, payload)
	res.Flush()
}
