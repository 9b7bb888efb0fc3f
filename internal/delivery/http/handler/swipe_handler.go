package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studybuds/studybuds-backend/internal/usecase/swipe"
)

type SwipeHandler struct {
	swipeUseCase *swipe.SwipeUseCase
}

func NewSwipeHandler(swipeUseCase *swipe.SwipeUseCase) *SwipeHandler {
	return &SwipeHandler{
		swipeUseCase: swipeUseCase,
	}
}

// Swipe handles POST /feed/swipe
// @Summary Swipe on a candidate
// @Description Left hides the candidate, right sends a match request
// @Tags feed
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body swipe.SwipeRequest true "Swipe"
// @Success 200 {object} swipe.SwipeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /feed/swipe [post]
func (h *SwipeHandler) Swipe(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	var req swipe.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.swipeUseCase.Swipe(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusOK
	if resp.Match != nil {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}
