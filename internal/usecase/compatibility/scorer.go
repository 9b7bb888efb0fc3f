// Package compatibility scores how well two study questionnaires fit.
package compatibility

import (
	"math"

	"github.com/studybuds/studybuds-backend/internal/domain"
)

// MaxScore is the upper bound of Score.
const MaxScore = 100

// ordinalWeights holds the points awarded at distance 0, 1 and 2 on an
// ordered scale. Anything further apart scores nothing.
type ordinalWeights [3]float64

var (
	hoursWeights       = ordinalWeights{20, 10, 5}
	environmentWeights = ordinalWeights{25, 15, 5}
	sessionWeights     = ordinalWeights{20, 10, 5}
)

const techniqueWeight = 15.0

// Breakdown lists the points contributed by each questionnaire dimension.
type Breakdown struct {
	StudyHoursPerDay  float64 `json:"study_hours_per_day"`
	PartnerStudyHours float64 `json:"partner_study_hours"`
	Environment       float64 `json:"environment"`
	SessionType       float64 `json:"session_type"`
	StudyTechniques   float64 `json:"study_techniques"`
	Total             int     `json:"total"`
}

// Score returns a deterministic compatibility score in [0, 100]. It is
// symmetric in its arguments and returns 0 when either side is nil.
func Score(a, b *domain.CompleteProfile) int {
	return Explain(a, b).Total
}

// ScoreProfiles scores two stored profiles, treating an incomplete one as 0.
func ScoreProfiles(a, b *domain.Profile) int {
	if a == nil || b == nil {
		return 0
	}
	ca, err := a.Complete()
	if err != nil {
		return 0
	}
	cb, err := b.Complete()
	if err != nil {
		return 0
	}
	return Score(ca, cb)
}

// Explain computes the per-dimension breakdown behind Score.
func Explain(a, b *domain.CompleteProfile) Breakdown {
	if a == nil || b == nil {
		return Breakdown{}
	}

	bd := Breakdown{
		StudyHoursPerDay:  ordinal(domain.StudyHoursScale, a.StudyHoursPerDay, b.StudyHoursPerDay, hoursWeights),
		PartnerStudyHours: ordinal(domain.StudyHoursScale, a.PartnerStudyHours, b.PartnerStudyHours, hoursWeights),
		Environment:       ordinal(domain.EnvironmentScale, a.Environment, b.Environment, environmentWeights),
		SessionType:       ordinal(domain.SessionTypeScale, a.SessionType, b.SessionType, sessionWeights),
		StudyTechniques:   techniqueWeight * jaccard(a.StudyTechniques, b.StudyTechniques),
	}

	sum := bd.StudyHoursPerDay + bd.PartnerStudyHours + bd.Environment + bd.SessionType + bd.StudyTechniques
	bd.Total = int(math.Floor(sum + 0.5))
	if bd.Total > MaxScore {
		bd.Total = MaxScore
	}
	if bd.Total < 0 {
		bd.Total = 0
	}
	return bd
}

func ordinal(scale []string, x, y string, weights ordinalWeights) float64 {
	i, j := domain.ScaleIndex(scale, x), domain.ScaleIndex(scale, y)
	if i < 0 || j < 0 {
		return 0
	}
	d := i - j
	if d < 0 {
		d = -d
	}
	if d >= len(weights) {
		return 0
	}
	return weights[d]
}

// jaccard returns |A∩B| / |A∪B| over the deduplicated sets, or 0 when both
// are empty.
func jaccard(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}

	intersection := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
