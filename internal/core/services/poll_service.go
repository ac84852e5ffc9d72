package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
)

const (
	maxQuestionLength = 200
	maxOptionLength   = 100
	minPollDuration   = 15 * time.Minute
	minOptionCount    = 2
)

type pollService struct {
	repo  ports.PollRepository
	clock ports.Clock
}

func NewPollService(repo ports.PollRepository, clock ports.Clock) ports.PollService {
	return &pollService{
		repo:  repo,
		clock: clock,
	}
}

// Create validates the poll construction invariants in order, failing fast
// on the first violation, then persists the poll with its options.
func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, error) {
	const op = "pollService.Create"

	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, domain.NewInvalidArgumentError("question must not be blank")
	}
	if len(question) > maxQuestionLength {
		return nil, domain.NewInvalidArgumentError("question must be at most %d characters", maxQuestionLength)
	}

	// Date-only comparison: a poll may start earlier today, but not on a
	// past date.
	today := s.clock.Now().UTC().Truncate(24 * time.Hour)
	if input.StartDate.UTC().Truncate(24 * time.Hour).Before(today) {
		return nil, domain.NewInvalidArgumentError("start date cannot be in the past")
	}

	if !input.EndDate.After(input.StartDate) {
		return nil, domain.NewInvalidArgumentError("end date must be after start date")
	}

	if input.EndDate.Sub(input.StartDate) < minPollDuration {
		return nil, domain.NewInvalidArgumentError("poll duration must be at least %d minutes", int(minPollDuration.Minutes()))
	}

	pollID := uuid.New()
	poll := &domain.Poll{
		ID:        pollID,
		Question:  question,
		StartDate: input.StartDate.UTC(),
		EndDate:   input.EndDate.UTC(),
		CreatorID: input.CreatorID,
		CreatedAt: s.clock.Now(),
	}

	for _, text := range input.Options {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if len(text) > maxOptionLength {
			return nil, domain.NewInvalidArgumentError("option text must be at most %d characters", maxOptionLength)
		}
		poll.Options = append(poll.Options, domain.PollOption{
			ID:       uuid.New(),
			PollID:   pollID,
			Text:     text,
			Position: len(poll.Options),
		})
	}

	if len(poll.Options) < minOptionCount {
		return nil, domain.NewInvalidArgumentError("poll must have at least %d options", minOptionCount)
	}

	if err := s.repo.Save(ctx, poll); err != nil {
		return nil, domain.NewSaveFailedError(op, err)
	}

	return poll, nil
}

func (s *pollService) GetPoll(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	const op = "pollService.GetPoll"

	poll, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return poll, nil
}

func (s *pollService) ActivePolls(ctx context.Context, questionFilter string) ([]*domain.Poll, error) {
	const op = "pollService.ActivePolls"

	polls, err := s.repo.Active(ctx, s.clock.Now(), strings.TrimSpace(questionFilter))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return polls, nil
}

func (s *pollService) ClosedPolls(ctx context.Context, input ports.ListClosedPollsInput) ([]*domain.Poll, error) {
	const op = "pollService.ClosedPolls"

	// An inverted range matches nothing; this is not an error.
	if input.EndedFrom != nil && input.EndedTo != nil && input.EndedFrom.After(*input.EndedTo) {
		return []*domain.Poll{}, nil
	}

	polls, err := s.repo.Closed(ctx, s.clock.Now(), strings.TrimSpace(input.QuestionFilter), input.EndedFrom, input.EndedTo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return polls, nil
}

func (s *pollService) UserPolls(ctx context.Context, userID string) ([]*domain.Poll, error) {
	const op = "pollService.UserPolls"

	polls, err := s.repo.ByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return polls, nil
}
