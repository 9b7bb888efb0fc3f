package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	logger      *zap.Logger
}

func NewProfileUseCase(profileRepo repository.ProfileRepository, logger *zap.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// SubmitQuestionnaireRequest represents the preferences questionnaire. Any
// answer may be left out; the stored profile is then incomplete.
type SubmitQuestionnaireRequest struct {
	StudyHoursPerDay  string   `json:"study_hours_per_day" binding:"omitempty,studyhours"`
	PartnerStudyHours string   `json:"partner_study_hours" binding:"omitempty,studyhours"`
	Environment       string   `json:"environment" binding:"omitempty,environment"`
	StudyTechniques   []string `json:"study_techniques" binding:"omitempty,max=7,dive,technique"`
	SessionType       string   `json:"session_type" binding:"omitempty,sessiontype"`
}

// ProfileResponse wraps a profile with its completeness.
type ProfileResponse struct {
	*domain.Profile
	Complete      bool     `json:"complete"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

// Submit replaces the caller's whole profile with the given answers. The
// display name and email are refreshed from the identity on every submit.
func (uc *ProfileUseCase) Submit(ctx context.Context, identity domain.Identity, req *SubmitQuestionnaireRequest) (*ProfileResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	p := &domain.Profile{
		UserID:            identity.UserID,
		DisplayName:       identity.Name,
		Email:             identity.Email,
		StudyHoursPerDay:  strings.TrimSpace(req.StudyHoursPerDay),
		PartnerStudyHours: strings.TrimSpace(req.PartnerStudyHours),
		Environment:       strings.TrimSpace(req.Environment),
		StudyTechniques:   domain.TechniqueSet(req.StudyTechniques),
		SessionType:       strings.TrimSpace(req.SessionType),
	}
	if err := uc.profileRepo.Put(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	resp := newProfileResponse(p)
	uc.logger.Info("questionnaire submitted",
		zap.String("user_id", p.UserID),
		zap.Bool("complete", resp.Complete),
	)
	return resp, nil
}

// Get returns the stored profile of userID.
func (uc *ProfileUseCase) Get(ctx context.Context, userID string) (*ProfileResponse, error) {
	p, err := uc.profileRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return newProfileResponse(p), nil
}

func newProfileResponse(p *domain.Profile) *ProfileResponse {
	missing := p.MissingFields()
	return &ProfileResponse{
		Profile:       p,
		Complete:      len(missing) == 0,
		MissingFields: missing,
	}
}

func validate(req *SubmitQuestionnaireRequest) error {
	check := func(scale []string, field, value string) error {
		value = strings.TrimSpace(value)
		if value != "" && domain.ScaleIndex(scale, value) < 0 {
			return fmt.Errorf("%w: unknown %s %q", domain.ErrInvalidInput, field, value)
		}
		return nil
	}
	if err := check(domain.StudyHoursScale, domain.FieldStudyHoursPerDay, req.StudyHoursPerDay); err != nil {
		return err
	}
	if err := check(domain.StudyHoursScale, domain.FieldPartnerStudyHours, req.PartnerStudyHours); err != nil {
		return err
	}
	if err := check(domain.EnvironmentScale, domain.FieldEnvironment, req.Environment); err != nil {
		return err
	}
	if err := check(domain.SessionTypeScale, domain.FieldSessionType, req.SessionType); err != nil {
		return err
	}
	for _, t := range req.StudyTechniques {
		if err := check(domain.StudyTechniques, domain.FieldStudyTechniques, t); err != nil {
			return err
		}
	}
	return nil
}
