package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studybuds/studybuds-backend/internal/usecase/auth"
)

type AuthHandler struct {
	tokenUseCase *auth.TokenUseCase
}

func NewAuthHandler(tokenUseCase *auth.TokenUseCase) *AuthHandler {
	return &AuthHandler{
		tokenUseCase: tokenUseCase,
	}
}

// DevToken issues a signed token without an identity provider (development only)
// @Summary Development token
// @Description Issue a bearer token for a made-up identity (non-production only)
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.DevTokenRequest true "Identity"
// @Success 200 {object} auth.TokenResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/dev-token [post]
func (h *AuthHandler) DevToken(c *gin.Context) {
	var req auth.DevTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.tokenUseCase.IssueDevToken(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated identity
// @Summary Current identity
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Identity
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, identity)
}
