package domain

import "time"

type EventType string

const (
	EventTypeStudy      EventType = "study"
	EventTypeExam       EventType = "exam"
	EventTypeAssignment EventType = "assignment"
	EventTypeOther      EventType = "other"
)

// CalendarEvent is a study-calendar entry owned by one user and visible to
// the emails it is shared with.
type CalendarEvent struct {
	ID             string    `json:"id" db:"id"`
	OwnerID        string    `json:"owner_id" db:"owner_id"`
	Title          string    `json:"title" db:"title"`
	Start          time.Time `json:"start" db:"starts_at"`
	End            time.Time `json:"end" db:"ends_at"`
	CourseMaterial string    `json:"course_material" db:"course_material"`
	EventType      EventType `json:"event_type" db:"event_type"`
	SharedWith     []string  `json:"shared_with" db:"shared_with"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

func (e *CalendarEvent) IsSharedWith(email string) bool {
	for _, s := range e.SharedWith {
		if s == email {
			return true
		}
	}
	return false
}
