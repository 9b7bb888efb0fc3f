package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studybuds/studybuds-backend/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockVerifier struct {
	identity domain.Identity
	err      error
	token    string
}

func (m *mockVerifier) VerifyToken(_ context.Context, token string) (domain.Identity, error) {
	m.token = token
	if m.err != nil {
		return domain.Identity{}, m.err
	}
	return m.identity, nil
}

func newEngine(v *mockVerifier) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()), Metrics())
	r.GET("/me", NewAuthMiddleware(v).RequireAuth(), func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, identity)
	})
	return r
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{"valid", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"missing", "", ""},
		{"basic auth", "Basic abc123", ""},
		{"no token", "Bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.expected, extractBearerToken(c))
		})
	}
}

func TestRequireAuth_SetsIdentity(t *testing.T) {
	v := &mockVerifier{identity: domain.Identity{UserID: "u1", Name: "Ann"}}
	r := newEngine(v)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
	assert.Equal(t, "good", v.token)
}

func TestRequireAuth_QueryToken(t *testing.T) {
	v := &mockVerifier{identity: domain.Identity{UserID: "u1"}}
	r := newEngine(v)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me?access_token=ws-token", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ws-token", v.token)
}

func TestRequireAuth_Rejects(t *testing.T) {
	r := newEngine(&mockVerifier{err: domain.ErrInvalidToken})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthenticated")

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer bad")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
