package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
)

type PollRepository interface {
	// Save persists a poll and its options atomically.
	Save(ctx context.Context, poll *domain.Poll) error
	// GetByID loads a poll with its options, in creation order.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	// Active returns polls active at now, soonest-ending first.
	Active(ctx context.Context, now time.Time, questionFilter string) ([]*domain.Poll, error)
	// Closed returns polls closed at now, most-recently-ended first,
	// optionally restricted to end dates within [endedFrom, endedTo].
	Closed(ctx context.Context, now time.Time, questionFilter string, endedFrom, endedTo *time.Time) ([]*domain.Poll, error)
	// ByCreator returns a user's polls, latest-starting first.
	ByCreator(ctx context.Context, creatorID string) ([]*domain.Poll, error)
}

type CreatePollInput struct {
	Question  string
	StartDate time.Time
	EndDate   time.Time
	Options   []string
	CreatorID string
}

type ListClosedPollsInput struct {
	QuestionFilter string
	EndedFrom      *time.Time
	EndedTo        *time.Time
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (*domain.Poll, error)
	GetPoll(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	ActivePolls(ctx context.Context, questionFilter string) ([]*domain.Poll, error)
	ClosedPolls(ctx context.Context, input ListClosedPollsInput) ([]*domain.Poll, error)
	UserPolls(ctx context.Context, userID string) ([]*domain.Poll, error)
}
