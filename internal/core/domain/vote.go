package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is a user's current selection for a poll. There is at most one
// vote per (poll, user); re-voting replaces the option in place.
type Vote struct {
	ID       uuid.UUID `json:"id"`
	PollID   uuid.UUID `json:"poll_id"`
	OptionID uuid.UUID `json:"option_id"`
	UserID   string    `json:"user_id"`
	VotedAt  time.Time `json:"voted_at"`
}
