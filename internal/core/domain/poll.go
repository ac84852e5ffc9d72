package domain

import (
	"time"

	"github.com/google/uuid"
)

// PollStatus is the temporal classification of a poll relative to a
// reference instant.
type PollStatus string

const (
	PollStatusFuture PollStatus = "future"
	PollStatusActive PollStatus = "active"
	PollStatusClosed PollStatus = "closed"
)

type Poll struct {
	ID        uuid.UUID    `json:"id"`
	Question  string       `json:"question"`
	StartDate time.Time    `json:"start_date"`
	EndDate   time.Time    `json:"end_date"`
	CreatorID string       `json:"creator_id"`
	Options   []PollOption `json:"options"`
	CreatedAt time.Time    `json:"created_at"`
}

type PollOption struct {
	ID       uuid.UUID `json:"id"`
	PollID   uuid.UUID `json:"poll_id"`
	Text     string    `json:"text"`
	Position int       `json:"position"`
}

// StatusAt classifies the poll against now. The start instant is votable,
// the end instant is not: a poll closes exactly at EndDate.
func (p *Poll) StatusAt(now time.Time) PollStatus {
	if now.Before(p.StartDate) {
		return PollStatusFuture
	}
	if now.Before(p.EndDate) {
		return PollStatusActive
	}
	return PollStatusClosed
}

// Option returns the poll option with the given id, or nil when the id
// does not belong to this poll.
func (p *Poll) Option(optionID uuid.UUID) *PollOption {
	for i := range p.Options {
		if p.Options[i].ID == optionID {
			return &p.Options[i]
		}
	}
	return nil
}
