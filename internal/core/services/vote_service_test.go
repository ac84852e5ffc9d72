package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type voteFixture struct {
	pollRepo *memPollRepo
	voteRepo *memVoteRepo
	svc      ports.VoteService
	poll     *domain.Poll
}

// newVoteFixture seeds one poll that is active at testNow with two options.
func newVoteFixture(t *testing.T) *voteFixture {
	t.Helper()

	pollRepo := newMemPollRepo()
	voteRepo := newMemVoteRepo()

	pollID := uuid.New()
	poll := &domain.Poll{
		ID:        pollID,
		Question:  "Best editor?",
		StartDate: testNow.Add(-time.Hour),
		EndDate:   testNow.Add(time.Hour),
		CreatorID: "creator-1",
		Options: []domain.PollOption{
			{ID: uuid.New(), PollID: pollID, Text: "Vim", Position: 0},
			{ID: uuid.New(), PollID: pollID, Text: "Emacs", Position: 1},
		},
	}
	require.NoError(t, pollRepo.Save(context.Background(), poll))

	return &voteFixture{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
		svc:      NewVoteService(discardLogger(), pollRepo, voteRepo, &fixedClock{now: testNow}),
		poll:     poll,
	}
}

func TestCastVoteInsertsFirstVote(t *testing.T) {
	f := newVoteFixture(t)

	vote, err := f.svc.CastVote(context.Background(), ports.CastVoteInput{
		PollID:   f.poll.ID,
		OptionID: f.poll.Options[0].ID,
		UserID:   "voter-1",
	})
	require.NoError(t, err)

	assert.Equal(t, f.poll.Options[0].ID, vote.OptionID)
	assert.Equal(t, testNow, vote.VotedAt)
	assert.Equal(t, 1, f.voteRepo.pollVoteCount(f.poll.ID))
}

func TestCastVoteSwitchesOptionInPlace(t *testing.T) {
	f := newVoteFixture(t)
	ctx := context.Background()

	first, err := f.svc.CastVote(ctx, ports.CastVoteInput{
		PollID: f.poll.ID, OptionID: f.poll.Options[0].ID, UserID: "voter-1",
	})
	require.NoError(t, err)

	second, err := f.svc.CastVote(ctx, ports.CastVoteInput{
		PollID: f.poll.ID, OptionID: f.poll.Options[1].ID, UserID: "voter-1",
	})
	require.NoError(t, err)

	// Still one row, same identity, new option.
	assert.Equal(t, 1, f.voteRepo.pollVoteCount(f.poll.ID))
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, f.poll.Options[1].ID, second.OptionID)
}

func TestCastVoteSequenceKeepsLastOption(t *testing.T) {
	f := newVoteFixture(t)
	ctx := context.Background()

	sequence := []uuid.UUID{
		f.poll.Options[0].ID,
		f.poll.Options[1].ID,
		f.poll.Options[0].ID,
		f.poll.Options[1].ID,
	}
	for _, optionID := range sequence {
		_, err := f.svc.CastVote(ctx, ports.CastVoteInput{
			PollID: f.poll.ID, OptionID: optionID, UserID: "voter-1",
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 1, f.voteRepo.pollVoteCount(f.poll.ID))
	vote, err := f.svc.GetUserVote(ctx, f.poll.ID, "voter-1")
	require.NoError(t, err)
	require.NotNil(t, vote)
	assert.Equal(t, sequence[len(sequence)-1], vote.OptionID)
}

func TestCastVoteSameOptionIsIdempotent(t *testing.T) {
	f := newVoteFixture(t)
	ctx := context.Background()

	input := ports.CastVoteInput{
		PollID: f.poll.ID, OptionID: f.poll.Options[0].ID, UserID: "voter-1",
	}

	_, err := f.svc.CastVote(ctx, input)
	require.NoError(t, err)
	_, err = f.svc.CastVote(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, 1, f.voteRepo.pollVoteCount(f.poll.ID))
}

func TestCastVotePollNotFound(t *testing.T) {
	f := newVoteFixture(t)

	_, err := f.svc.CastVote(context.Background(), ports.CastVoteInput{
		PollID: uuid.New(), OptionID: f.poll.Options[0].ID, UserID: "voter-1",
	})

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Poll", notFound.Kind)
}

func TestCastVoteRejectsCrossPollOption(t *testing.T) {
	f := newVoteFixture(t)
	ctx := context.Background()

	otherID := uuid.New()
	foreignOption := domain.PollOption{ID: uuid.New(), PollID: otherID, Text: "Other", Position: 0}
	other := &domain.Poll{
		ID:        otherID,
		Question:  "Other poll",
		StartDate: testNow.Add(-time.Hour),
		EndDate:   testNow.Add(time.Hour),
		Options:   []domain.PollOption{foreignOption, {ID: uuid.New(), PollID: otherID, Text: "Another", Position: 1}},
	}
	require.NoError(t, f.pollRepo.Save(ctx, other))

	_, err := f.svc.CastVote(ctx, ports.CastVoteInput{
		PollID: f.poll.ID, OptionID: foreignOption.ID, UserID: "voter-1",
	})

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "PollOption", notFound.Kind)
	assert.Equal(t, 0, f.voteRepo.pollVoteCount(f.poll.ID))
}

func TestCastVoteOutsideActiveWindow(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
	}{
		{"before start", testNow.Add(-2 * time.Hour)},
		{"exactly at end", testNow.Add(time.Hour)},
		{"after end", testNow.Add(3 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newVoteFixture(t)
			svc := NewVoteService(discardLogger(), f.pollRepo, f.voteRepo, &fixedClock{now: tt.now})

			_, err := svc.CastVote(context.Background(), ports.CastVoteInput{
				PollID: f.poll.ID, OptionID: f.poll.Options[0].ID, UserID: "voter-1",
			})
			assert.ErrorIs(t, err, domain.ErrPollNotActive)
		})
	}
}

func TestCastVoteSaveFailure(t *testing.T) {
	f := newVoteFixture(t)
	f.voteRepo.upsertErr = assert.AnError

	_, err := f.svc.CastVote(context.Background(), ports.CastVoteInput{
		PollID: f.poll.ID, OptionID: f.poll.Options[0].ID, UserID: "voter-1",
	})

	var saveFailed *domain.SaveFailedError
	require.ErrorAs(t, err, &saveFailed)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestHasVotedEmptyUserIsFalse(t *testing.T) {
	f := newVoteFixture(t)

	voted, err := f.svc.HasVoted(context.Background(), f.poll.ID, "")
	require.NoError(t, err)
	assert.False(t, voted)

	// Unknown poll with an empty user id is still a quiet false.
	voted, err = f.svc.HasVoted(context.Background(), uuid.New(), "")
	require.NoError(t, err)
	assert.False(t, voted)
}

func TestGetUserVoteNullSafety(t *testing.T) {
	f := newVoteFixture(t)
	ctx := context.Background()

	vote, err := f.svc.GetUserVote(ctx, f.poll.ID, "")
	require.NoError(t, err)
	assert.Nil(t, vote)

	vote, err = f.svc.GetUserVote(ctx, uuid.New(), "voter-1")
	require.NoError(t, err)
	assert.Nil(t, vote)

	vote, err = f.svc.GetUserVote(ctx, f.poll.ID, "never-voted")
	require.NoError(t, err)
	assert.Nil(t, vote)
}

func TestListVoters(t *testing.T) {
	f := newVoteFixture(t)
	ctx := context.Background()

	// Missing poll is an error.
	_, err := f.svc.ListVoters(ctx, uuid.New())
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)

	// Existing poll with no votes is an empty list, not an error.
	voters, err := f.svc.ListVoters(ctx, f.poll.ID)
	require.NoError(t, err)
	assert.Empty(t, voters)

	user := &domain.User{ID: uuid.New(), Username: "ada", Email: "ada@example.com"}
	f.voteRepo.users[user.ID.String()] = user
	_, err = f.svc.CastVote(ctx, ports.CastVoteInput{
		PollID: f.poll.ID, OptionID: f.poll.Options[0].ID, UserID: user.ID.String(),
	})
	require.NoError(t, err)

	voters, err = f.svc.ListVoters(ctx, f.poll.ID)
	require.NoError(t, err)
	require.Len(t, voters, 1)
	assert.Equal(t, "ada", voters[0].Username)
}
