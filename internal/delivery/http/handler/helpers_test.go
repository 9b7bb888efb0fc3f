package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studybuds/studybuds-backend/internal/delivery/http/middleware"
	"github.com/studybuds/studybuds-backend/internal/infrastructure/pubsub"
	"github.com/studybuds/studybuds-backend/internal/repository/memory"
	"github.com/studybuds/studybuds-backend/internal/usecase/auth"
	"github.com/studybuds/studybuds-backend/internal/usecase/calendar"
	"github.com/studybuds/studybuds-backend/internal/usecase/chat"
	"github.com/studybuds/studybuds-backend/internal/usecase/feed"
	"github.com/studybuds/studybuds-backend/internal/usecase/icebreaker"
	"github.com/studybuds/studybuds-backend/internal/usecase/match"
	"github.com/studybuds/studybuds-backend/internal/usecase/profile"
	"github.com/studybuds/studybuds-backend/internal/usecase/swipe"
)

const testSecret = "test-secret-test-secret-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	engine *gin.Engine
	tokens *auth.TokenUseCase
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	require.NoError(t, RegisterValidators())

	logger := zap.NewNop()
	store := memory.NewStore()
	profiles := memory.NewProfileRepository(store)
	matches := memory.NewMatchRepository(store)
	messages := memory.NewMessageRepository(store)
	events := memory.NewEventRepository(store)
	skips := memory.NewSkipRepository(store)

	tokens := auth.NewTokenUseCase(testSecret, "studybuds-test", time.Hour)
	matchUC := match.NewMatchUseCase(matches, profiles, logger)
	finder := feed.NewPartnerFinder(profiles, matches, logger)

	authH := NewAuthHandler(tokens)
	profileH := NewProfileHandler(profile.NewProfileUseCase(profiles, logger))
	partnerH := NewPartnerHandler(finder, feed.DefaultMinScore)
	feedH := NewFeedHandler(feed.NewFeedUseCase(finder, skips, matchUC, logger), feed.DefaultMinScore)
	swipeH := NewSwipeHandler(swipe.NewSwipeUseCase(skips, matchUC, logger))
	matchH := NewMatchHandler(matchUC, icebreaker.NewIcebreakerUseCase(matches, profiles, nil, logger))
	chatH := NewChatHandler(chat.NewChatUseCase(matches, messages, pubsub.NewMemoryBroker(), logger), logger)
	eventH := NewEventHandler(calendar.NewCalendarUseCase(events, logger))

	r := gin.New()
	r.POST("/auth/dev-token", authH.DevToken)

	api := r.Group("")
	api.Use(middleware.NewAuthMiddleware(tokens).RequireAuth())
	api.GET("/auth/me", authH.Me)
	api.PUT("/profile/me", profileH.SubmitQuestionnaire)
	api.GET("/profile/me", profileH.GetMyProfile)
	api.GET("/profile/:user_id", profileH.GetProfileByUserID)
	api.GET("/partners", partnerH.FindPartners)
	api.GET("/partners/:user_id/score", partnerH.GetScore)
	api.GET("/feed/next", feedH.GetNext)
	api.POST("/feed/swipe", swipeH.Swipe)
	api.POST("/feed/reset", feedH.Reset)
	api.GET("/matches", matchH.List)
	api.POST("/matches", matchH.Create)
	api.GET("/matches/:id", matchH.Get)
	api.POST("/matches/:id/accept", matchH.Accept)
	api.POST("/matches/:id/decline", matchH.Decline)
	api.POST("/matches/:id/cancel", matchH.Cancel)
	api.GET("/matches/:id/icebreakers", matchH.Icebreakers)
	api.GET("/matches/:id/messages", chatH.ListMessages)
	api.POST("/matches/:id/messages", chatH.SendMessage)
	api.GET("/matches/:id/messages/ws", chatH.Stream)
	api.GET("/events", eventH.List)
	api.POST("/events", eventH.Create)
	api.DELETE("/events/:id", eventH.Delete)
	api.POST("/events/:id/share", eventH.Share)
	api.DELETE("/events/:id/share", eventH.Unshare)

	return &testApp{engine: r, tokens: tokens}
}

func (a *testApp) token(t *testing.T, userID string) string {
	t.Helper()
	resp, err := a.tokens.IssueDevToken(&auth.DevTokenRequest{
		UserID: userID,
		Name:   "Name " + userID,
		Email:  userID + "@uni.edu",
	})
	require.NoError(t, err)
	return resp.Token
}

// do sends body (if non-nil) as JSON on behalf of userID ("" for anonymous).
func (a *testApp) do(t *testing.T, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+a.token(t, userID))
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func questionnaire(hours, partnerHours, env, session string, techniques ...string) map[string]any {
	return map[string]any{
		"study_hours_per_day": hours,
		"partner_study_hours": partnerHours,
		"environment":         env,
		"study_techniques":    techniques,
		"session_type":        session,
	}
}

func (a *testApp) submit(t *testing.T, userID string, body map[string]any) {
	t.Helper()
	w := a.do(t, http.MethodPut, "/profile/me", userID, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

// acceptedMatch creates alice->bob and has bob accept it.
func (a *testApp) acceptedMatch(t *testing.T) string {
	t.Helper()
	a.submit(t, "alice", questionnaire("4-6", "4-6", "Completely silent", "Independent", "Flashcards"))
	a.submit(t, "bob", questionnaire("4-6", "4-6", "Completely silent", "Independent", "Flashcards"))

	w := a.do(t, http.MethodPost, "/matches", "alice", map[string]string{"target_user_id": "bob"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[map[string]any](t, w)["id"].(string)

	w = a.do(t, http.MethodPost, "/matches/"+id+"/accept", "bob", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return id
}
