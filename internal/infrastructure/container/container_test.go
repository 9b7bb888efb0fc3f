package container

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuds/studybuds-backend/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func memoryConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Host: "127.0.0.1", Port: 0, Env: "test", ReadTimeout: time.Second},
		JWT:     config.JWTConfig{AccessSecret: "container-test-secret", Issuer: "studybuds", DevTokenExpiry: time.Hour},
		Storage: config.StorageConfig{Type: config.StorageTypeMemory},
		Logging: config.LoggingConfig{Level: "error"},
		Matching: config.MatchingConfig{
			MinScore:    60,
			FeedSkipTTL: time.Hour,
		},
	}
}

func call(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func devToken(t *testing.T, h http.Handler, userID string) string {
	t.Helper()
	w := call(t, h, http.MethodPost, "/api/v1/auth/dev-token", "", map[string]string{"user_id": userID, "name": userID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestNewContainer_MemoryMode(t *testing.T) {
	c, err := NewContainer(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.DB)
	assert.Nil(t, c.Redis)
	assert.Nil(t, c.Gemini)
	require.NotNil(t, c.Server)

	w := call(t, c.Router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = call(t, c.Router, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = call(t, c.Router, http.MethodGet, "/api/v1/partners", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNewContainer_EndToEndWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := memoryConfig()
	cfg.Redis = config.RedisConfig{Host: mr.Host(), Port: port}

	c, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Close()
	require.NotNil(t, c.Redis)

	answers := map[string]any{
		"study_hours_per_day": "4-6",
		"partner_study_hours": "4-6",
		"environment":         "Moderately quiet",
		"study_techniques":    []string{"Pomodoro technique", "Active recall"},
		"session_type":        "Hybrid",
	}
	alice := devToken(t, c.Router, "alice")
	bob := devToken(t, c.Router, "bob")
	for _, token := range []string{alice, bob} {
		w := call(t, c.Router, http.MethodPut, "/api/v1/profile/me", token, answers)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := call(t, c.Router, http.MethodPost, "/api/v1/feed/swipe", alice, map[string]string{"user_id": "bob", "direction": "left"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, mr.Exists("feed:skipped:alice"))

	w = call(t, c.Router, http.MethodPost, "/api/v1/feed/reset", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"restored":1}`, w.Body.String())

	w = call(t, c.Router, http.MethodPost, "/api/v1/feed/swipe", alice, map[string]string{"user_id": "bob", "direction": "right"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestNewContainer_DevTokenHiddenInProduction(t *testing.T) {
	cfg := memoryConfig()
	cfg.Server.Env = config.EnvProduction
	cfg.Logging.Level = "error"

	c, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Close()

	w := call(t, c.Router, http.MethodPost, "/api/v1/auth/dev-token", "", map[string]string{"user_id": "alice"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewContainer_RedisUnreachable(t *testing.T) {
	cfg := memoryConfig()
	cfg.Redis = config.RedisConfig{Host: "127.0.0.1", Port: 1}

	_, err := NewContainer(context.Background(), cfg)
	assert.Error(t, err)
}
