// Package icebreaker suggests opening messages for accepted matches.
package icebreaker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/infrastructure/gemini"
	"github.com/studybuds/studybuds-backend/internal/repository"
)

const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// Generator produces icebreakers from a prompt. *gemini.GeminiClient
// satisfies it.
type Generator interface {
	GenerateIcebreakers(ctx context.Context, p gemini.IcebreakerPrompt) ([]string, error)
}

type IcebreakerUseCase struct {
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	generator   Generator
	logger      *zap.Logger
}

// NewIcebreakerUseCase accepts a nil generator; suggestions then come from
// the built-in templates.
func NewIcebreakerUseCase(
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	generator Generator,
	logger *zap.Logger,
) *IcebreakerUseCase {
	return &IcebreakerUseCase{
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		generator:   generator,
		logger:      logger,
	}
}

// IcebreakersResponse lists suggested openers and where they came from.
type IcebreakersResponse struct {
	Icebreakers []string `json:"icebreakers"`
	Source      string   `json:"source"`
}

func (uc *IcebreakerUseCase) Suggest(ctx context.Context, matchID, actorID string) (*IcebreakersResponse, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, domain.ErrMatchNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	partnerID, ok := match.GetOtherUserID(actorID)
	if !ok {
		return nil, domain.ErrNotMatchParticipant
	}
	if match.Status != domain.MatchStatusAccepted {
		return nil, domain.ErrMatchNotAccepted
	}

	prompt := gemini.IcebreakerPrompt{
		SenderName:  match.UserDetails[actorID].Name,
		PartnerName: match.UserDetails[partnerID].Name,
	}
	self, selfErr := uc.profileRepo.Get(ctx, actorID)
	partner, partnerErr := uc.profileRepo.Get(ctx, partnerID)
	if selfErr == nil && partnerErr == nil {
		prompt.SharedTechniques = intersect(self.StudyTechniques, partner.StudyTechniques)
		prompt.PartnerTechniques = partner.StudyTechniques
		prompt.Environment = partner.Environment
		prompt.SessionType = partner.SessionType
	}

	if uc.generator != nil {
		lines, err := uc.generator.GenerateIcebreakers(ctx, prompt)
		if err == nil && len(lines) > 0 {
			return &IcebreakersResponse{Icebreakers: lines, Source: SourceAI}, nil
		}
		uc.logger.Warn("icebreaker generation failed, using fallback",
			zap.String("match_id", matchID),
			zap.Error(err),
		)
	}

	return &IcebreakersResponse{Icebreakers: fallback(prompt), Source: SourceFallback}, nil
}

func fallback(p gemini.IcebreakerPrompt) []string {
	name := p.PartnerName
	if name == "" {
		name = "there"
	}

	lines := []string{fmt.Sprintf("Hi %s! When would suit you for a first study session?", name)}
	if len(p.SharedTechniques) > 0 {
		lines = append(lines, fmt.Sprintf("We both use %s. Want to try it together this week?", strings.Join(p.SharedTechniques, " and ")))
	}
	if p.SessionType != "" {
		lines = append(lines, fmt.Sprintf("You prefer %s sessions. How do you usually structure them?", strings.ToLower(p.SessionType)))
	}
	lines = append(lines, "Which course are you focusing on right now?")
	return lines
}

func intersect(a, b []string) []string {
	in := make(map[string]struct{}, len(b))
	for _, t := range b {
		in[t] = struct{}{}
	}
	out := []string{}
	for _, t := range domain.TechniqueSet(a) {
		if _, ok := in[t]; ok {
			out = append(out, t)
		}
	}
	return out
}
