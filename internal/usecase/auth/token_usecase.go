package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/studybuds/studybuds-backend/internal/domain"
)

// TokenVerifier turns a bearer token into the caller's identity.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, tokenString string) (domain.Identity, error)
}

// Claims are the identity-provider claims the service relies on.
type Claims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type TokenUseCase struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenUseCase(secret, issuer string, ttl time.Duration) *TokenUseCase {
	return &TokenUseCase{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// DevTokenRequest represents a development token request
type DevTokenRequest struct {
	UserID string `json:"user_id" binding:"required,max=128"`
	Name   string `json:"name" binding:"max=100"`
	Email  string `json:"email" binding:"omitempty,email"`
}

// TokenResponse represents an issued token
type TokenResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      domain.Identity `json:"user"`
}

// VerifyToken checks signature, expiry and issuer and returns the identity
// carried by the token. The subject claim is the user id.
func (uc *TokenUseCase) VerifyToken(_ context.Context, tokenString string) (domain.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(uc.now),
	}
	if uc.issuer != "" {
		opts = append(opts, jwt.WithIssuer(uc.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return uc.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, fmt.Errorf("%w: token expired", domain.ErrInvalidToken)
		}
		return domain.Identity{}, domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	return domain.Identity{
		UserID: claims.Subject,
		Name:   claims.Name,
		Email:  claims.Email,
	}, nil
}

// IssueDevToken signs a token for local development. Production tokens come
// from the identity provider.
func (uc *TokenUseCase) IssueDevToken(req *DevTokenRequest) (*TokenResponse, error) {
	now := uc.now()
	expiresAt := now.Add(uc.ttl)
	identity := domain.Identity{UserID: req.UserID, Name: req.Name, Email: req.Email}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Name:  req.Name,
		Email: req.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   req.UserID,
			Issuer:    uc.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	tokenString, err := token.SignedString(uc.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &TokenResponse{
		Token:     tokenString,
		ExpiresAt: expiresAt,
		User:      identity,
	}, nil
}
