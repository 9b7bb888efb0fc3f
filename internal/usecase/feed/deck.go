package feed

import (
	"context"

	"github.com/studybuds/studybuds-backend/internal/domain"
)

// MatchRequester opens a match request on a right swipe.
type MatchRequester interface {
	CreateRequest(ctx context.Context, initiatorID, targetID string) (*domain.Match, error)
}

// Deck walks a ranked candidate list one card at a time. It is not safe for
// concurrent use.
type Deck struct {
	ownerID    string
	candidates []Candidate
	pos        int
	requester  MatchRequester
}

func NewDeck(ownerID string, candidates []Candidate, requester MatchRequester) *Deck {
	return &Deck{
		ownerID:    ownerID,
		candidates: candidates,
		requester:  requester,
	}
}

// Current returns the card on top, or nil once the deck is exhausted.
func (d *Deck) Current() *Candidate {
	if d.pos >= len(d.candidates) {
		return nil
	}
	return &d.candidates[d.pos]
}

func (d *Deck) Remaining() int {
	return len(d.candidates) - d.pos
}

// SwipeLeft skips the current card.
func (d *Deck) SwipeLeft() {
	if d.pos < len(d.candidates) {
		d.pos++
	}
}

// SwipeRight requests a match with the current card and advances. The deck
// advances even when the request fails so the same card is not shown again.
func (d *Deck) SwipeRight(ctx context.Context) (*domain.Match, error) {
	c := d.Current()
	if c == nil {
		return nil, nil
	}
	d.pos++
	return d.requester.CreateRequest(ctx, d.ownerID, c.UserID)
}

// Reset rewinds to the first card.
func (d *Deck) Reset() {
	d.pos = 0
}
