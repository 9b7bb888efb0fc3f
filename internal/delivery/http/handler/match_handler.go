package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/usecase/icebreaker"
	"github.com/studybuds/studybuds-backend/internal/usecase/match"
)

type MatchHandler struct {
	matchUseCase      *match.MatchUseCase
	icebreakerUseCase *icebreaker.IcebreakerUseCase
}

func NewMatchHandler(matchUseCase *match.MatchUseCase, icebreakerUseCase *icebreaker.IcebreakerUseCase) *MatchHandler {
	return &MatchHandler{
		matchUseCase:      matchUseCase,
		icebreakerUseCase: icebreakerUseCase,
	}
}

// MatchesResponse lists match requests.
type MatchesResponse struct {
	Matches []*domain.Match `json:"matches"`
}

// List handles GET /matches
// @Summary List my match requests
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param active query bool false "Only pending and accepted requests"
// @Success 200 {object} MatchesResponse
// @Router /matches [get]
func (h *MatchHandler) List(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	var (
		matches []*domain.Match
		err     error
	)
	if c.Query("active") == "true" {
		matches, err = h.matchUseCase.ListActiveForUser(c.Request.Context(), identity.UserID)
	} else {
		matches, err = h.matchUseCase.ListForUser(c.Request.Context(), identity.UserID)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, MatchesResponse{Matches: matches})
}

// Create handles POST /matches
// @Summary Send a match request
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body match.CreateMatchRequest true "Target user"
// @Success 201 {object} domain.Match
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /matches [post]
func (h *MatchHandler) Create(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	var req match.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	m, err := h.matchUseCase.CreateRequest(c.Request.Context(), identity.UserID, req.TargetUserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// Get handles GET /matches/:id
func (h *MatchHandler) Get(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	m, err := h.matchUseCase.Get(c.Request.Context(), c.Param("id"), identity.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// Accept handles POST /matches/:id/accept
// @Summary Accept a pending request
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Match
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /matches/{id}/accept [post]
func (h *MatchHandler) Accept(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	m, err := h.matchUseCase.Accept(c.Request.Context(), c.Param("id"), identity.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// Decline handles POST /matches/:id/decline
func (h *MatchHandler) Decline(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	m, err := h.matchUseCase.Decline(c.Request.Context(), c.Param("id"), identity.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// Cancel handles POST /matches/:id/cancel
func (h *MatchHandler) Cancel(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	if err := h.matchUseCase.Cancel(c.Request.Context(), c.Param("id"), identity.UserID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "match request cancelled"})
}

// Icebreakers handles GET /matches/:id/icebreakers
// @Summary Suggested opening messages
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Success 200 {object} icebreaker.IcebreakersResponse
// @Failure 409 {object} ErrorResponse
// @Router /matches/{id}/icebreakers [get]
func (h *MatchHandler) Icebreakers(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	resp, err := h.icebreakerUseCase.Suggest(c.Request.Context(), c.Param("id"), identity.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
