package domain

// Ordered answer scales of the questionnaire. The position of a value in
// its slice is its index for distance scoring.
var (
	StudyHoursScale = []string{"1-3", "4-6", "6-9", ">9"}

	EnvironmentScale = []string{
		"Completely silent",
		"Moderately quiet",
		"Moderately loud",
		"Loud room",
	}

	SessionTypeScale = []string{"Independent", "Hybrid", "Mixed", "Interactive"}

	StudyTechniques = []string{
		"Flashcards",
		"Making notes/Cornell notes",
		"Mind maps",
		"Practice exams",
		"Pomodoro technique",
		"Spaced repetition",
		"Active recall",
	}
)

// ScaleIndex returns the position of value in scale, or -1 if unrecognized.
func ScaleIndex(scale []string, value string) int {
	for i, v := range scale {
		if v == value {
			return i
		}
	}
	return -1
}

// IsKnownTechnique reports whether t belongs to the fixed technique vocabulary.
func IsKnownTechnique(t string) bool {
	return ScaleIndex(StudyTechniques, t) >= 0
}
