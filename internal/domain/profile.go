package domain

import (
	"sort"
	"strings"
	"time"
)

// Profile is a stored questionnaire document. Any field may be empty; use
// Complete to obtain a validated view before scoring.
type Profile struct {
	UserID            string    `json:"user_id" db:"user_id"`
	DisplayName       string    `json:"display_name" db:"display_name"`
	Email             string    `json:"email" db:"email"`
	StudyHoursPerDay  string    `json:"study_hours_per_day" db:"study_hours_per_day"`
	PartnerStudyHours string    `json:"partner_study_hours" db:"partner_study_hours"`
	Environment       string    `json:"environment" db:"environment"`
	StudyTechniques   []string  `json:"study_techniques" db:"study_techniques"`
	SessionType       string    `json:"session_type" db:"session_type"`
	SubmittedAt       time.Time `json:"submitted_at" db:"submitted_at"`
}

// CompleteProfile is a profile whose five questionnaire answers are all present.
type CompleteProfile struct {
	UserID            string
	StudyHoursPerDay  string
	PartnerStudyHours string
	Environment       string
	StudyTechniques   []string
	SessionType       string
}

// Questionnaire field names as reported in ProfileIncompleteError.
const (
	FieldStudyHoursPerDay  = "studyHoursPerDay"
	FieldPartnerStudyHours = "partnerStudyHours"
	FieldEnvironment       = "environment"
	FieldStudyTechniques   = "studyTechniques"
	FieldSessionType       = "sessionType"
)

// MissingFields lists the questionnaire answers that are absent or blank.
func (p *Profile) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(p.StudyHoursPerDay) == "" {
		missing = append(missing, FieldStudyHoursPerDay)
	}
	if strings.TrimSpace(p.PartnerStudyHours) == "" {
		missing = append(missing, FieldPartnerStudyHours)
	}
	if strings.TrimSpace(p.Environment) == "" {
		missing = append(missing, FieldEnvironment)
	}
	if len(TechniqueSet(p.StudyTechniques)) == 0 {
		missing = append(missing, FieldStudyTechniques)
	}
	if strings.TrimSpace(p.SessionType) == "" {
		missing = append(missing, FieldSessionType)
	}
	return missing
}

// Complete validates presence of every questionnaire answer.
func (p *Profile) Complete() (*CompleteProfile, error) {
	if missing := p.MissingFields(); len(missing) > 0 {
		return nil, &ProfileIncompleteError{UserID: p.UserID, MissingFields: missing}
	}
	return &CompleteProfile{
		UserID:            p.UserID,
		StudyHoursPerDay:  p.StudyHoursPerDay,
		PartnerStudyHours: p.PartnerStudyHours,
		Environment:       p.Environment,
		StudyTechniques:   TechniqueSet(p.StudyTechniques),
		SessionType:       p.SessionType,
	}, nil
}

// TechniqueSet deduplicates and sorts techniques, dropping blanks.
func TechniqueSet(techniques []string) []string {
	seen := make(map[string]struct{}, len(techniques))
	set := make([]string, 0, len(techniques))
	for _, t := range techniques {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		set = append(set, t)
	}
	sort.Strings(set)
	return set
}

// UserDetails is the display snapshot stored on a match request.
type UserDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Details returns the display snapshot of the profile owner.
func (p *Profile) Details() UserDetails {
	return UserDetails{Name: p.DisplayName, Email: p.Email}
}
