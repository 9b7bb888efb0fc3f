package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuds/studybuds-backend/internal/domain"
)

func TestIssueAndVerify(t *testing.T) {
	uc := NewTokenUseCase("secret", "studybuds", time.Hour)

	issued, err := uc.IssueDevToken(&DevTokenRequest{UserID: "u1", Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)

	identity, err := uc.VerifyToken(context.Background(), issued.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{UserID: "u1", Name: "Ann", Email: "ann@example.com"}, identity)
}

func TestVerify_Rejections(t *testing.T) {
	uc := NewTokenUseCase("secret", "studybuds", time.Hour)
	ctx := context.Background()

	other := NewTokenUseCase("other-secret", "studybuds", time.Hour)
	foreign, err := other.IssueDevToken(&DevTokenRequest{UserID: "u1"})
	require.NoError(t, err)
	_, err = uc.VerifyToken(ctx, foreign.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	wrongIssuer := NewTokenUseCase("secret", "someone-else", time.Hour)
	tok, err := wrongIssuer.IssueDevToken(&DevTokenRequest{UserID: "u1"})
	require.NoError(t, err)
	_, err = uc.VerifyToken(ctx, tok.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = uc.VerifyToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	uc := NewTokenUseCase("secret", "", time.Minute)
	issued, err := uc.IssueDevToken(&DevTokenRequest{UserID: "u1"})
	require.NoError(t, err)

	uc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = uc.VerifyToken(context.Background(), issued.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerify_RequiresSubjectAndAlgorithm(t *testing.T) {
	uc := NewTokenUseCase("secret", "", time.Hour)
	ctx := context.Background()

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	s, err := noSubject.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = uc.VerifyToken(ctx, s)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	s, err = hs512.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = uc.VerifyToken(ctx, s)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
