package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
)

type resultService struct {
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
	voteSvc  ports.VoteService
}

func NewResultService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository, voteSvc ports.VoteService) ports.ResultService {
	return &resultService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
		voteSvc:  voteSvc,
	}
}

// ComputeResults recounts votes per option from current storage state.
// Options keep their creation order. Each percentage is rounded to two
// decimals on its own; the rounded values may not sum to exactly 100.
func (s *resultService) ComputeResults(ctx context.Context, pollID uuid.UUID, requestingUserID string) (*domain.PollResult, error) {
	const op = "resultService.ComputeResults"

	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	counts, err := s.voteRepo.CountByOption(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	result := &domain.PollResult{
		PollID:     poll.ID,
		Question:   poll.Question,
		StartDate:  poll.StartDate,
		EndDate:    poll.EndDate,
		TotalVotes: total,
		Results:    make([]domain.OptionResult, 0, len(poll.Options)),
	}

	for _, opt := range poll.Options {
		count := counts[opt.ID]
		percentage := 0.0
		if total > 0 {
			percentage = roundTwoDecimals(float64(count) / float64(total) * 100)
		}
		result.Results = append(result.Results, domain.OptionResult{
			OptionID:   opt.ID,
			OptionText: opt.Text,
			VoteCount:  count,
			Percentage: percentage,
		})
	}

	userVote, err := s.voteSvc.GetUserVote(ctx, pollID, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if userVote != nil {
		optionID := userVote.OptionID
		result.UserVoteOptionID = &optionID
	}

	return result, nil
}

func roundTwoDecimals(v float64) float64 {
	return math.Round(v*100) / 100
}
