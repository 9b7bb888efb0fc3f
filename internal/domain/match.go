package domain

import "time"

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusAccepted  MatchStatus = "accepted"
	MatchStatusDeclined  MatchStatus = "declined"
	MatchStatusCancelled MatchStatus = "cancelled"
)

// IsActive reports whether the status blocks a new request for the same pair.
func (s MatchStatus) IsActive() bool {
	return s == MatchStatusPending || s == MatchStatusAccepted
}

// Match is a match request between two users. User1ID < User2ID always.
//
// UserDetails is a snapshot taken when the request was created and is
// never refreshed from later profile edits.
type Match struct {
	ID          string                 `json:"id" db:"id"`
	User1ID     string                 `json:"user1_id" db:"user1_id"`
	User2ID     string                 `json:"user2_id" db:"user2_id"`
	InitiatorID string                 `json:"initiator_id" db:"initiator_id"`
	Status      MatchStatus            `json:"status" db:"status"`
	UserDetails map[string]UserDetails `json:"user_details" db:"-"`
	CreatedAt   time.Time              `json:"created_at" db:"created_at"`
	AcceptedAt  *time.Time             `json:"accepted_at,omitempty" db:"accepted_at"`
	DeclinedAt  *time.Time             `json:"declined_at,omitempty" db:"declined_at"`
}

// OrderedPair returns a and b sorted so the first is lexically smaller.
func OrderedPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

func (m *Match) HasUser(userID string) bool {
	return m.User1ID == userID || m.User2ID == userID
}

func (m *Match) GetOtherUserID(userID string) (string, bool) {
	if m.User1ID == userID {
		return m.User2ID, true
	}
	if m.User2ID == userID {
		return m.User1ID, true
	}
	return "", false
}

// Recipient returns the party who did not initiate the request.
func (m *Match) Recipient() string {
	other, _ := m.GetOtherUserID(m.InitiatorID)
	return other
}
