package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/usecase/feed"
)

type PartnerHandler struct {
	finder          *feed.PartnerFinder
	defaultMinScore int
}

func NewPartnerHandler(finder *feed.PartnerFinder, defaultMinScore int) *PartnerHandler {
	return &PartnerHandler{
		finder:          finder,
		defaultMinScore: defaultMinScore,
	}
}

// PartnersResponse lists ranked candidates.
type PartnersResponse struct {
	Partners []feed.Candidate `json:"partners"`
	MinScore int              `json:"min_score"`
}

// FindPartners handles GET /partners
// @Summary Find compatible partners
// @Description Rank every other complete profile by compatibility with the caller
// @Tags partners
// @Security BearerAuth
// @Produce json
// @Param min_score query int false "Minimum compatibility score (default 60)"
// @Success 200 {object} PartnersResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /partners [get]
func (h *PartnerHandler) FindPartners(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	minScore, err := parseMinScore(c, h.defaultMinScore)
	if err != nil {
		writeError(c, err)
		return
	}

	partners, err := h.finder.FindCompatiblePartners(c.Request.Context(), identity.UserID, minScore)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, PartnersResponse{Partners: partners, MinScore: minScore})
}

// GetScore handles GET /partners/:user_id/score
func (h *PartnerHandler) GetScore(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	breakdown, err := h.finder.Explain(c.Request.Context(), identity.UserID, c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

func parseMinScore(c *gin.Context, fallback int) (int, error) {
	raw := c.Query("min_score")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: min_score must be a non-negative integer", domain.ErrInvalidInput)
	}
	return v, nil
}
