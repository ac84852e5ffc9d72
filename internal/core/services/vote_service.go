package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
)

type voteService struct {
	log      *slog.Logger
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
	clock    ports.Clock
}

func NewVoteService(log *slog.Logger, pollRepo ports.PollRepository, voteRepo ports.VoteRepository, clock ports.Clock) ports.VoteService {
	return &voteService{
		log:      log,
		pollRepo: pollRepo,
		voteRepo: voteRepo,
		clock:    clock,
	}
}

// CastVote records the user's selection on an active poll. A first vote
// inserts a row; a repeat vote moves the existing row to the new option.
// Re-voting for the same option succeeds and leaves a single row either way.
func (s *voteService) CastVote(ctx context.Context, input ports.CastVoteInput) (*domain.Vote, error) {
	const op = "voteService.CastVote"

	log := s.log.With(slog.String("op", op), slog.String("poll_id", input.PollID.String()))

	poll, err := s.pollRepo.GetByID(ctx, input.PollID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.clock.Now()
	if poll.StatusAt(now) != domain.PollStatusActive {
		log.Info("vote rejected, poll not active", slog.Time("now", now))
		return nil, fmt.Errorf("%s: %w", op, domain.ErrPollNotActive)
	}

	// Membership check also rejects options that exist but belong to a
	// different poll.
	if poll.Option(input.OptionID) == nil {
		return nil, fmt.Errorf("%s: %w", op, domain.NewNotFoundError("PollOption", input.OptionID.String()))
	}

	vote := &domain.Vote{
		ID:       uuid.New(),
		PollID:   input.PollID,
		OptionID: input.OptionID,
		UserID:   input.UserID,
		VotedAt:  now,
	}

	saved, err := s.voteRepo.Upsert(ctx, vote)
	if err != nil {
		log.Error("failed to persist vote", slog.Any("error", err))
		return nil, domain.NewSaveFailedError(op, err)
	}

	log.Info("vote recorded", slog.String("option_id", saved.OptionID.String()))
	return saved, nil
}

func (s *voteService) HasVoted(ctx context.Context, pollID uuid.UUID, userID string) (bool, error) {
	// An anonymous caller has, by definition, not voted.
	if userID == "" {
		return false, nil
	}

	vote, err := s.voteRepo.Find(ctx, pollID, userID)
	if err != nil {
		return false, fmt.Errorf("voteService.HasVoted: %w", err)
	}

	return vote != nil, nil
}

func (s *voteService) GetUserVote(ctx context.Context, pollID uuid.UUID, userID string) (*domain.Vote, error) {
	if userID == "" {
		return nil, nil
	}

	vote, err := s.voteRepo.Find(ctx, pollID, userID)
	if err != nil {
		return nil, fmt.Errorf("voteService.GetUserVote: %w", err)
	}

	return vote, nil
}

func (s *voteService) ListVoters(ctx context.Context, pollID uuid.UUID) ([]*domain.User, error) {
	const op = "voteService.ListVoters"

	if _, err := s.pollRepo.GetByID(ctx, pollID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	voters, err := s.voteRepo.Voters(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if voters == nil {
		voters = []*domain.User{}
	}
	return voters, nil
}
