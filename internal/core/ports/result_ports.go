package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
)

type ResultService interface {
	// ComputeResults aggregates per-option counts and percentages for the
	// poll and attaches the requesting user's current vote, if any.
	// requestingUserID may be empty.
	ComputeResults(ctx context.Context, pollID uuid.UUID, requestingUserID string) (*domain.PollResult, error)
}
