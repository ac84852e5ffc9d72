package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
)

type VoteRepository interface {
	// Upsert inserts the vote, or updates option and timestamp in place
	// when a vote for (poll, user) already exists. The (poll_id, user_id)
	// uniqueness constraint at the storage layer is the authoritative
	// guard against concurrent duplicates.
	Upsert(ctx context.Context, vote *domain.Vote) (*domain.Vote, error)
	// Find returns the user's vote on the poll, or nil when there is none.
	Find(ctx context.Context, pollID uuid.UUID, userID string) (*domain.Vote, error)
	// CountByOption returns vote counts keyed by option id. Options with
	// zero votes are absent from the map.
	CountByOption(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error)
	// Voters returns the users who voted on the poll.
	Voters(ctx context.Context, pollID uuid.UUID) ([]*domain.User, error)
}

type CastVoteInput struct {
	PollID   uuid.UUID
	OptionID uuid.UUID
	UserID   string
}

type VoteService interface {
	CastVote(ctx context.Context, input CastVoteInput) (*domain.Vote, error)
	HasVoted(ctx context.Context, pollID uuid.UUID, userID string) (bool, error)
	GetUserVote(ctx context.Context, pollID uuid.UUID, userID string) (*domain.Vote, error)
	ListVoters(ctx context.Context, pollID uuid.UUID) ([]*domain.User, error)
}
