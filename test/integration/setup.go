package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/votehub/api/internal/adapters/handler/http"
	repo "github.com/votehub/api/internal/adapters/repository/postgres"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/services"
)

const testJWTSecret = "test-secret"

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	require.NoError(t, applyMigrations(db))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := services.SystemClock{}

	pollRepo := repo.NewPollRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	userRepo := repo.NewUserRepository(db)

	pollSvc := services.NewPollService(pollRepo, clock)
	voteSvc := services.NewVoteService(log, pollRepo, voteRepo, clock)
	resultSvc := services.NewResultService(pollRepo, voteRepo, voteSvc)
	authSvc := services.NewAuthService(log, userRepo, clock, []byte(testJWTSecret), 15*time.Minute)
	userSvc := services.NewUserService(userRepo)

	router := handler.NewHandler(
		handler.NewAuthHandler(authSvc),
		handler.NewPollHandler(pollSvc, voteSvc),
		handler.NewVoteHandler(voteSvc, resultSvc),
		handler.NewUserHandler(userSvc),
		[]byte(testJWTSecret),
	)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// createUserAndToken inserts a user directly and signs an access token the
// middleware will accept.
func (app *TestApp) createUserAndToken(t *testing.T) (string, string) {
	t.Helper()

	userID := uuid.New()
	email := gofakeit.Email()
	username := gofakeit.Username()
	_, err := app.DB.Exec(
		"INSERT INTO users (id, username, email, pass_hash) VALUES ($1, $2, $3, $4)",
		userID, username, email, []byte("x"),
	)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	return userID.String(), signed
}

// doJSON sends an authenticated JSON request and returns the response. The
// caller owns the body.
func (app *TestApp) doJSON(t *testing.T, method, path, token string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	return out
}

// insertPoll writes a poll with an arbitrary window directly, bypassing the
// creation validator, for seeding closed and future polls.
func (app *TestApp) insertPoll(t *testing.T, creatorID, question string, start, end time.Time, optionTexts ...string) *domain.Poll {
	t.Helper()

	pollID := uuid.New()
	_, err := app.DB.Exec(
		"INSERT INTO polls (id, question, start_date, end_date, creator_id) VALUES ($1, $2, $3, $4, $5)",
		pollID, question, start, end, creatorID,
	)
	require.NoError(t, err)

	poll := &domain.Poll{ID: pollID, Question: question, StartDate: start, EndDate: end, CreatorID: creatorID}
	for i, text := range optionTexts {
		optID := uuid.New()
		_, err := app.DB.Exec(
			"INSERT INTO poll_options (id, poll_id, text, ord) VALUES ($1, $2, $3, $4)",
			optID, pollID, text, i,
		)
		require.NoError(t, err)
		poll.Options = append(poll.Options, domain.PollOption{ID: optID, PollID: pollID, Text: text, Position: i})
	}

	return poll
}
