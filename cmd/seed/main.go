// Command seed fills a development database with fake users, polls in all
// three temporal states, and votes. Not for production use.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/votehub/api/internal/adapters/repository/postgres"
	"github.com/votehub/api/internal/config"
	"github.com/votehub/api/internal/core/domain"
)

const (
	userCount        = 10
	pollsPerState    = 4
	optionsPerPoll   = 3
	seedPassword     = "password123"
	seedPasswordCost = bcrypt.MinCost
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	userRepo := postgres.NewUserRepository(db)
	pollRepo := postgres.NewPollRepository(db)
	voteRepo := postgres.NewVoteRepository(db)

	passHash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), seedPasswordCost)
	if err != nil {
		log.Fatal(err)
	}

	now := time.Now().UTC()

	users := make([]*domain.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		user := &domain.User{
			ID:        uuid.New(),
			Username:  gofakeit.Username(),
			Email:     gofakeit.Email(),
			PassHash:  passHash,
			CreatedAt: now,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("failed to seed user: %v", err)
		}
		users = append(users, user)
	}

	windows := map[string][2]time.Time{
		"active": {now.Add(-24 * time.Hour), now.Add(24 * time.Hour)},
		"closed": {now.Add(-72 * time.Hour), now.Add(-48 * time.Hour)},
		"future": {now.Add(48 * time.Hour), now.Add(72 * time.Hour)},
	}

	var activePolls []*domain.Poll
	for state, window := range windows {
		for i := 0; i < pollsPerState; i++ {
			creator := users[gofakeit.Number(0, len(users)-1)]
			pollID := uuid.New()
			poll := &domain.Poll{
				ID:        pollID,
				Question:  gofakeit.Question(),
				StartDate: window[0],
				EndDate:   window[1],
				CreatorID: creator.ID.String(),
				CreatedAt: now,
			}
			for j := 0; j < optionsPerPoll; j++ {
				poll.Options = append(poll.Options, domain.PollOption{
					ID:       uuid.New(),
					PollID:   pollID,
					Text:     gofakeit.BuzzWord(),
					Position: j,
				})
			}
			if err := pollRepo.Save(ctx, poll); err != nil {
				log.Fatalf("failed to seed poll: %v", err)
			}
			if state == "active" {
				activePolls = append(activePolls, poll)
			}
		}
	}

	voteCount := 0
	for _, poll := range activePolls {
		for _, user := range users {
			if gofakeit.Bool() {
				continue
			}
			option := poll.Options[gofakeit.Number(0, len(poll.Options)-1)]
			vote := &domain.Vote{
				ID:       uuid.New(),
				PollID:   poll.ID,
				OptionID: option.ID,
				UserID:   user.ID.String(),
				VotedAt:  now,
			}
			if _, err := voteRepo.Upsert(ctx, vote); err != nil {
				log.Fatalf("failed to seed vote: %v", err)
			}
			voteCount++
		}
	}

	fmt.Printf("seeded %d users, %d polls, %d votes (password for all users: %s)\n",
		userCount, 3*pollsPerState, voteCount, seedPassword)
}
