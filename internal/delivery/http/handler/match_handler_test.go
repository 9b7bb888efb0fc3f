package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/usecase/icebreaker"
)

func TestMatch_Lifecycle(t *testing.T) {
	app := newTestApp(t)
	app.submit(t, "alice", questionnaire("4-6", "4-6", "Completely silent", "Independent", "Flashcards"))
	app.submit(t, "bob", questionnaire("4-6", "4-6", "Completely silent", "Independent", "Flashcards"))

	w := app.do(t, http.MethodPost, "/matches", "alice", map[string]string{"target_user_id": "bob"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[domain.Match](t, w)
	assert.Equal(t, domain.MatchStatusPending, created.Status)
	assert.Equal(t, "Name bob", created.UserDetails["bob"].Name)

	w = app.do(t, http.MethodPost, "/matches", "bob", map[string]string{"target_user_id": "alice"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Only the recipient may respond.
	w = app.do(t, http.MethodPost, "/matches/"+created.ID+"/accept", "alice", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/matches/"+created.ID+"/accept", "mallory", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPost, "/matches/"+created.ID+"/accept", "bob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	accepted := decode[domain.Match](t, w)
	assert.Equal(t, domain.MatchStatusAccepted, accepted.Status)
	assert.NotNil(t, accepted.AcceptedAt)

	w = app.do(t, http.MethodPost, "/matches/"+created.ID+"/decline", "bob", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	list := decode[MatchesResponse](t, app.do(t, http.MethodGet, "/matches?active=true", "bob", nil))
	require.Len(t, list.Matches, 1)
	assert.Equal(t, created.ID, list.Matches[0].ID)
}

func TestMatch_DeclineThenRerequest(t *testing.T) {
	app := newTestApp(t)
	app.submit(t, "alice", questionnaire("4-6", "4-6", "Completely silent", "Independent", "Flashcards"))
	app.submit(t, "bob", questionnaire("4-6", "4-6", "Completely silent", "Independent", "Flashcards"))

	created := decode[domain.Match](t, app.do(t, http.MethodPost, "/matches", "alice", map[string]string{"target_user_id": "bob"}))

	w := app.do(t, http.MethodPost, "/matches/"+created.ID+"/decline", "bob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.MatchStatusDeclined, decode[domain.Match](t, w).Status)

	active := decode[MatchesResponse](t, app.do(t, http.MethodGet, "/matches?active=true", "alice", nil))
	assert.Empty(t, active.Matches)
	all := decode[MatchesResponse](t, app.do(t, http.MethodGet, "/matches", "alice", nil))
	assert.Len(t, all.Matches, 1)

	w = app.do(t, http.MethodPost, "/matches", "alice", map[string]string{"target_user_id": "bob"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestMatch_CancelRemovesRequest(t *testing.T) {
	app := newTestApp(t)
	app.submit(t, "alice", questionnaire("4-6", "4-6", "Completely silent", "Independent", "Flashcards"))
	app.submit(t, "bob", questionnaire("4-6", "4-6", "Completely silent", "Independent", "Flashcards"))

	created := decode[domain.Match](t, app.do(t, http.MethodPost, "/matches", "alice", map[string]string{"target_user_id": "bob"}))

	w := app.do(t, http.MethodPost, "/matches/"+created.ID+"/cancel", "bob", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/matches/"+created.ID+"/cancel", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/matches/"+created.ID, "alice", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMatch_CreateErrors(t *testing.T) {
	app := newTestApp(t)
	app.submit(t, "alice", questionnaire("4-6", "4-6", "Completely silent", "Independent", "Flashcards"))

	tests := []struct {
		name string
		body any
		want int
	}{
		{"missing target", map[string]string{}, http.StatusBadRequest},
		{"self", map[string]string{"target_user_id": "alice"}, http.StatusBadRequest},
		{"unknown target", map[string]string{"target_user_id": "ghost"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(t, http.MethodPost, "/matches", "alice", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestMatch_GetRequiresParticipant(t *testing.T) {
	app := newTestApp(t)
	id := app.acceptedMatch(t)

	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/matches/"+id, "alice", nil).Code)
	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodGet, "/matches/"+id, "mallory", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, "/matches/nope", "alice", nil).Code)
}

func TestMatch_IcebreakersFallback(t *testing.T) {
	app := newTestApp(t)
	id := app.acceptedMatch(t)

	w := app.do(t, http.MethodGet, "/matches/"+id+"/icebreakers", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[icebreaker.IcebreakersResponse](t, w)
	assert.Equal(t, icebreaker.SourceFallback, resp.Source)
	assert.NotEmpty(t, resp.Icebreakers)
	assert.Contains(t, resp.Icebreakers[0], "Name bob")
}
