package domain

import (
	"time"

	"github.com/google/uuid"
)

// PollResult is the aggregated outcome of a poll, recomputed from the
// current vote rows on every read.
type PollResult struct {
	PollID           uuid.UUID      `json:"poll_id"`
	Question         string         `json:"question"`
	StartDate        time.Time      `json:"start_date"`
	EndDate          time.Time      `json:"end_date"`
	TotalVotes       int64          `json:"total_votes"`
	UserVoteOptionID *uuid.UUID     `json:"user_vote_option_id,omitempty"`
	Results          []OptionResult `json:"results"`
}

// OptionResult carries one option's count and its share of the total,
// rounded to two decimals. Percentages are rounded independently and may
// not sum to exactly 100.
type OptionResult struct {
	OptionID   uuid.UUID `json:"option_id"`
	OptionText string    `json:"option_text"`
	VoteCount  int64     `json:"vote_count"`
	Percentage float64   `json:"percentage"`
}
