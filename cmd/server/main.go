package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	stdhttp "net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/votehub/api/internal/adapters/handler/http"
	"github.com/votehub/api/internal/adapters/repository/postgres"
	"github.com/votehub/api/internal/config"
	"github.com/votehub/api/internal/core/services"
	"github.com/votehub/api/internal/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logg := logger.New(cfg.Env)
	logg.Info("starting votehub api", slog.String("env", cfg.Env), slog.Int("port", cfg.HTTP.Port))

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		logg.Error("failed to connect to database", slog.Any("error", err))
		return
	}
	defer db.Close()

	pollRepo := postgres.NewPollRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	userRepo := postgres.NewUserRepository(db)

	clock := services.SystemClock{}
	pollSvc := services.NewPollService(pollRepo, clock)
	voteSvc := services.NewVoteService(logg, pollRepo, voteRepo, clock)
	resultSvc := services.NewResultService(pollRepo, voteRepo, voteSvc)
	authSvc := services.NewAuthService(logg, userRepo, clock, []byte(cfg.JWTSecret), cfg.AccessTokenTTL)
	userSvc := services.NewUserService(userRepo)

	handler := http.NewHandler(
		http.NewAuthHandler(authSvc),
		http.NewPollHandler(pollSvc, voteSvc),
		http.NewVoteHandler(voteSvc, resultSvc),
		http.NewUserHandler(userSvc),
		[]byte(cfg.JWTSecret),
	)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(handler)

	server := &stdhttp.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.HTTP.Port),
		Handler: corsHandler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logg.Error("server stopped", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error("graceful shutdown failed", slog.Any("error", err))
	}
}
