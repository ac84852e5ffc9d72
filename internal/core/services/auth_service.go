package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type authService struct {
	log            *slog.Logger
	userRepo       ports.UserRepository
	clock          ports.Clock
	jwtSecret      []byte
	accessTokenTTL time.Duration
}

func NewAuthService(log *slog.Logger, userRepo ports.UserRepository, clock ports.Clock, jwtSecret []byte, accessTokenTTL time.Duration) ports.AuthService {
	return &authService{
		log:            log,
		userRepo:       userRepo,
		clock:          clock,
		jwtSecret:      jwtSecret,
		accessTokenTTL: accessTokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	const op = "authService.Register"

	log := s.log.With(slog.String("op", op))

	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" {
		return nil, domain.NewInvalidArgumentError("username must not be blank")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.NewInvalidArgumentError("invalid email address")
	}
	if len(input.Password) < minPasswordLength {
		return nil, domain.NewInvalidArgumentError("password must be at least %d characters", minPasswordLength)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := &domain.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		PassHash:  passHash,
		CreatedAt: s.clock.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			log.Warn("registration rejected, user exists", slog.String("email", email))
			return nil, fmt.Errorf("%s: %w", op, domain.ErrUserAlreadyExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	const op = "authService.Login"

	log := s.log.With(slog.String("op", op))

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, fmt.Errorf("%s: %w", op, domain.ErrInvalidCredentials)
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Info("invalid credentials", slog.String("email", email))
		return "", nil, fmt.Errorf("%s: %w", op, domain.ErrInvalidCredentials)
	}

	token, err := s.newAccessToken(user)
	if err != nil {
		log.Error("failed to sign access token", slog.Any("error", err))
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))
	return token, user, nil
}

func (s *authService) newAccessToken(user *domain.User) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"exp":   now.Add(s.accessTokenTTL).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
