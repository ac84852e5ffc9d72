package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPollStatusAt(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	poll := &Poll{
		ID:        uuid.New(),
		Question:  "Status boundaries",
		StartDate: start,
		EndDate:   start.Add(time.Hour),
	}

	tests := []struct {
		name string
		now  time.Time
		want PollStatus
	}{
		{"one second before start", start.Add(-time.Second), PollStatusFuture},
		{"exactly at start", start, PollStatusActive},
		{"one minute before end", start.Add(59 * time.Minute), PollStatusActive},
		{"exactly at end", start.Add(time.Hour), PollStatusClosed},
		{"after end", start.Add(2 * time.Hour), PollStatusClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, poll.StatusAt(tt.now))
		})
	}
}

func TestPollOptionLookup(t *testing.T) {
	pollID := uuid.New()
	optA := PollOption{ID: uuid.New(), PollID: pollID, Text: "A", Position: 0}
	optB := PollOption{ID: uuid.New(), PollID: pollID, Text: "B", Position: 1}
	poll := &Poll{ID: pollID, Options: []PollOption{optA, optB}}

	found := poll.Option(optB.ID)
	if assert.NotNil(t, found) {
		assert.Equal(t, "B", found.Text)
	}

	assert.Nil(t, poll.Option(uuid.New()))
}
