package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/usecase/auth"
)

func TestAuth_DevTokenThenMe(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/auth/dev-token", "", map[string]string{"user_id": "alice", "name": "Alice", "email": "alice@uni.edu"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode[auth.TokenResponse](t, w)
	require.NotEmpty(t, token.Token)

	identity, err := app.tokens.VerifyToken(context.Background(), token.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.UserID)

	w = app.do(t, http.MethodGet, "/auth/me", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decode[domain.Identity](t, w).UserID)
}

func TestAuth_DevTokenValidation(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/auth/dev-token", "", map[string]string{"name": "Nobody"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/auth/dev-token", "", map[string]string{"user_id": "x", "email": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
