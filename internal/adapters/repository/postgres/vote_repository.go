package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// Upsert writes the vote in a single statement so a concurrent duplicate
// insert for the same (poll_id, user_id) becomes an update instead of a
// constraint violation. The retained row keeps its original id.
func (r *voteRepository) Upsert(ctx context.Context, vote *domain.Vote) (*domain.Vote, error) {
	query := `
		INSERT INTO votes (id, poll_id, option_id, user_id, voted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (poll_id, user_id)
		DO UPDATE SET option_id = EXCLUDED.option_id, voted_at = EXCLUDED.voted_at
		RETURNING id
	`

	saved := *vote
	err := r.db.QueryRowContext(ctx, query, vote.ID, vote.PollID, vote.OptionID, vote.UserID, vote.VotedAt).Scan(&saved.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert vote: %w", err)
	}

	return &saved, nil
}

func (r *voteRepository) Find(ctx context.Context, pollID uuid.UUID, userID string) (*domain.Vote, error) {
	query := `
		SELECT id, poll_id, option_id, user_id, voted_at
		FROM votes
		WHERE poll_id = $1 AND user_id = $2
	`

	var vote domain.Vote
	err := r.db.QueryRowContext(ctx, query, pollID, userID).Scan(
		&vote.ID, &vote.PollID, &vote.OptionID, &vote.UserID, &vote.VotedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find vote: %w", err)
	}

	return &vote, nil
}

func (r *voteRepository) CountByOption(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error) {
	query := `
		SELECT option_id, COUNT(*)
		FROM votes
		WHERE poll_id = $1
		GROUP BY option_id
	`

	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64)
	for rows.Next() {
		var optionID uuid.UUID
		var count int64
		if err := rows.Scan(&optionID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[optionID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote counts: %w", err)
	}

	return counts, nil
}

func (r *voteRepository) Voters(ctx context.Context, pollID uuid.UUID) ([]*domain.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.created_at
		FROM votes v
		JOIN users u ON u.id = v.user_id
		WHERE v.poll_id = $1
		ORDER BY v.voted_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list voters: %w", err)
	}
	defer rows.Close()

	var voters []*domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		voters = append(voters, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voters: %w", err)
	}

	return voters, nil
}
