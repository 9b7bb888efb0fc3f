package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/usecase/calendar"
)

type EventHandler struct {
	calendarUseCase *calendar.CalendarUseCase
}

func NewEventHandler(calendarUseCase *calendar.CalendarUseCase) *EventHandler {
	return &EventHandler{
		calendarUseCase: calendarUseCase,
	}
}

// EventsResponse lists calendar events visible to the caller.
type EventsResponse struct {
	Events []*domain.CalendarEvent `json:"events"`
}

// List handles GET /events
// @Summary Events I own or that are shared with me
// @Tags events
// @Security BearerAuth
// @Produce json
// @Success 200 {object} EventsResponse
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	events, err := h.calendarUseCase.List(c.Request.Context(), identity)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, EventsResponse{Events: events})
}

// Create handles POST /events
// @Summary Create a calendar event
// @Tags events
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body calendar.CreateEventRequest true "Event"
// @Success 201 {object} domain.CalendarEvent
// @Failure 400 {object} ErrorResponse
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	var req calendar.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	event, err := h.calendarUseCase.Create(c.Request.Context(), identity, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// Delete handles DELETE /events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	if err := h.calendarUseCase.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "event deleted"})
}

// Share handles POST /events/:id/share
func (h *EventHandler) Share(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	var req calendar.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.calendarUseCase.Share(c.Request.Context(), identity, c.Param("id"), req.Email); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "event shared"})
}

// Unshare handles DELETE /events/:id/share
func (h *EventHandler) Unshare(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	var req calendar.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.calendarUseCase.Unshare(c.Request.Context(), identity, c.Param("id"), req.Email); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "event unshared"})
}
