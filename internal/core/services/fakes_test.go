package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

// memPollRepo implements ports.PollRepository over a map, mirroring the
// SQL adapter's filtering and ordering semantics.
type memPollRepo struct {
	polls   map[uuid.UUID]*domain.Poll
	saveErr error
}

func newMemPollRepo() *memPollRepo {
	return &memPollRepo{polls: make(map[uuid.UUID]*domain.Poll)}
}

func (r *memPollRepo) Save(_ context.Context, poll *domain.Poll) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.polls[poll.ID] = poll
	return nil
}

func (r *memPollRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Poll, error) {
	poll, ok := r.polls[id]
	if !ok {
		return nil, domain.NewNotFoundError("Poll", id.String())
	}
	return poll, nil
}

func (r *memPollRepo) Active(_ context.Context, now time.Time, questionFilter string) ([]*domain.Poll, error) {
	var out []*domain.Poll
	for _, p := range r.polls {
		if p.StatusAt(now) != domain.PollStatusActive {
			continue
		}
		if questionFilter != "" && !strings.Contains(strings.ToLower(p.Question), strings.ToLower(questionFilter)) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndDate.Before(out[j].EndDate) })
	return out, nil
}

func (r *memPollRepo) Closed(_ context.Context, now time.Time, questionFilter string, endedFrom, endedTo *time.Time) ([]*domain.Poll, error) {
	var out []*domain.Poll
	for _, p := range r.polls {
		if p.StatusAt(now) != domain.PollStatusClosed {
			continue
		}
		if questionFilter != "" && !strings.Contains(strings.ToLower(p.Question), strings.ToLower(questionFilter)) {
			continue
		}
		if endedFrom != nil && p.EndDate.Before(*endedFrom) {
			continue
		}
		if endedTo != nil && p.EndDate.After(*endedTo) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndDate.After(out[j].EndDate) })
	return out, nil
}

func (r *memPollRepo) ByCreator(_ context.Context, creatorID string) ([]*domain.Poll, error) {
	var out []*domain.Poll
	for _, p := range r.polls {
		if p.CreatorID == creatorID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

// memVoteRepo keys votes by (poll, user), matching the unique constraint
// the SQL adapter relies on.
type memVoteRepo struct {
	votes     map[string]*domain.Vote
	users     map[string]*domain.User
	upsertErr error
}

func newMemVoteRepo() *memVoteRepo {
	return &memVoteRepo{
		votes: make(map[string]*domain.Vote),
		users: make(map[string]*domain.User),
	}
}

func voteKey(pollID uuid.UUID, userID string) string {
	return pollID.String() + "/" + userID
}

func (r *memVoteRepo) Upsert(_ context.Context, vote *domain.Vote) (*domain.Vote, error) {
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	key := voteKey(vote.PollID, vote.UserID)
	if existing, ok := r.votes[key]; ok {
		existing.OptionID = vote.OptionID
		existing.VotedAt = vote.VotedAt
		return existing, nil
	}
	copied := *vote
	r.votes[key] = &copied
	return &copied, nil
}

func (r *memVoteRepo) Find(_ context.Context, pollID uuid.UUID, userID string) (*domain.Vote, error) {
	vote, ok := r.votes[voteKey(pollID, userID)]
	if !ok {
		return nil, nil
	}
	return vote, nil
}

func (r *memVoteRepo) CountByOption(_ context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64)
	for _, v := range r.votes {
		if v.PollID == pollID {
			counts[v.OptionID]++
		}
	}
	return counts, nil
}

func (r *memVoteRepo) Voters(_ context.Context, pollID uuid.UUID) ([]*domain.User, error) {
	var out []*domain.User
	for _, v := range r.votes {
		if v.PollID != pollID {
			continue
		}
		if u, ok := r.users[v.UserID]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memVoteRepo) pollVoteCount(pollID uuid.UUID) int {
	n := 0
	for _, v := range r.votes {
		if v.PollID == pollID {
			n++
		}
	}
	return n
}

type memUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[string]*domain.User),
	}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrUserAlreadyExists
	}
	r.byEmail[user.Email] = user
	r.byID[user.ID.String()] = user
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
