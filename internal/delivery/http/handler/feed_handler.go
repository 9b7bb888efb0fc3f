package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studybuds/studybuds-backend/internal/usecase/feed"
)

type FeedHandler struct {
	feedUseCase     *feed.FeedUseCase
	defaultMinScore int
}

func NewFeedHandler(feedUseCase *feed.FeedUseCase, defaultMinScore int) *FeedHandler {
	return &FeedHandler{
		feedUseCase:     feedUseCase,
		defaultMinScore: defaultMinScore,
	}
}

// GetNext handles GET /feed/next
// @Summary Next feed card
// @Description Best-ranked candidate the caller has not skipped; candidate is null when the feed is empty
// @Tags feed
// @Security BearerAuth
// @Produce json
// @Param min_score query int false "Minimum compatibility score"
// @Success 200 {object} feed.NextCardResponse
// @Router /feed/next [get]
func (h *FeedHandler) GetNext(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	minScore, err := parseMinScore(c, h.defaultMinScore)
	if err != nil {
		writeError(c, err)
		return
	}

	resp, err := h.feedUseCase.Next(c.Request.Context(), identity.UserID, minScore)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Reset handles POST /feed/reset
// @Summary Reset skipped candidates
// @Tags feed
// @Security BearerAuth
// @Produce json
// @Success 200 {object} feed.ResetResponse
// @Router /feed/reset [post]
func (h *FeedHandler) Reset(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	resp, err := h.feedUseCase.ResetSkips(c.Request.Context(), identity.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
