package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studybuds/studybuds-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// SubmitQuestionnaire handles PUT /profile/me
// @Summary Submit questionnaire
// @Description Replace the caller's questionnaire answers
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.SubmitQuestionnaireRequest true "Questionnaire"
// @Success 200 {object} profile.ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /profile/me [put]
func (h *ProfileHandler) SubmitQuestionnaire(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	var req profile.SubmitQuestionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.profileUseCase.Submit(c.Request.Context(), identity, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetMyProfile handles GET /profile/me
// @Summary Get my profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} profile.ProfileResponse
// @Failure 404 {object} ErrorResponse
// @Router /profile/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	resp, err := h.profileUseCase.Get(c.Request.Context(), identity.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetProfileByUserID handles GET /profile/:user_id
func (h *ProfileHandler) GetProfileByUserID(c *gin.Context) {
	resp, err := h.profileUseCase.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
