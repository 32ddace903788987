package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/ErlanBelekov/task-tracker/internal/email"
	"github.com/ErlanBelekov/task-tracker/internal/metrics"
	"github.com/ErlanBelekov/task-tracker/internal/password"
	"github.com/ErlanBelekov/task-tracker/internal/repository"
	"github.com/go-playground/validator/v10"
)

const (
	tokenBytes = 20
	// mintAttempts bounds retries when a freshly generated key is already taken.
	mintAttempts = 3
)

// dummyPassword is hashed once so unknown-email logins pay the same
// comparison cost as wrong-password logins.
const dummyPassword = "timing-equalizer-1!"

// PasswordHasher is the one-way hashing primitive the auth flow relies on.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type AuthUsecase struct {
	users     repository.UserRepository
	tokens    repository.TokenRepository
	hasher    PasswordHasher
	email     email.Sender
	validate  *validator.Validate
	logger    *slog.Logger
	dummyHash string
}

func NewAuthUsecase(
	users repository.UserRepository,
	tokens repository.TokenRepository,
	hasher PasswordHasher,
	emailSender email.Sender,
	logger *slog.Logger,
) *AuthUsecase {
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		logger.Warn("hash dummy password", "error", err)
	}
	return &AuthUsecase{
		users:     users,
		tokens:    tokens,
		hasher:    hasher,
		email:     emailSender,
		validate:  validator.New(),
		logger:    logger.With("component", "auth_usecase"),
		dummyHash: dummyHash,
	}
}

// NormalizeEmail trims and lower-cases an address, making lookups case-insensitive.
func NormalizeEmail(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// Register validates the credentials, hashes the password and persists a new user.
func (u *AuthUsecase) Register(ctx context.Context, emailAddr, pw string) (*domain.User, error) {
	emailAddr = NormalizeEmail(emailAddr)

	if emailAddr == "" {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, &domain.MissingFieldError{Field: "email"}
	}
	if pw == "" {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, &domain.MissingFieldError{Field: "password"}
	}
	if err := u.validate.Var(emailAddr, "email"); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidEmail
	}
	if violations := domain.ValidatePassword(pw); len(violations) > 0 {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, &domain.WeakPasswordError{Violations: violations}
	}

	hash, err := u.hasher.Hash(pw)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{Email: emailAddr, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	metrics.RegistrationsTotal.WithLabelValues("success").Inc()

	u.sendWelcome(ctx, user)
	return user, nil
}

// sendWelcome is best-effort: a failed email never fails the registration.
func (u *AuthUsecase) sendWelcome(ctx context.Context, user *domain.User) {
	subject := "Welcome to Task Tracker"
	body := fmt.Sprintf(`<p>Your account <b>%s</b> is ready. Log in to start tracking tasks.</p>`, user.Email)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		u.logger.WarnContext(ctx, "send welcome email", "user_id", user.ID, "error", err)
	}
}

// Authenticate verifies email and password. It never reveals which of the two
// was wrong: every failure is domain.ErrInvalidCredentials.
func (u *AuthUsecase) Authenticate(ctx context.Context, emailAddr, pw string) (*domain.User, error) {
	emailAddr = NormalizeEmail(emailAddr)
	if emailAddr == "" || pw == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = u.hasher.Compare(u.dummyHash, pw)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := u.hasher.Compare(user.PasswordHash, pw); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}
	return user, nil
}

// IssueToken returns the user's token, minting one on first use. Concurrent
// callers for the same user all end up with the single stored token.
func (u *AuthUsecase) IssueToken(ctx context.Context, user *domain.User) (*domain.Token, error) {
	existing, err := u.tokens.FindByUserID(ctx, user.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrTokenNotFound) {
		return nil, fmt.Errorf("find token: %w", err)
	}

	created, err := u.mintToken(ctx, user.ID)
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, domain.ErrTokenExists) {
		return nil, err
	}

	// Lost the race to a concurrent login; the winner's token is authoritative.
	winner, err := u.tokens.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("find token after conflict: %w", err)
	}
	return winner, nil
}

// Login authenticates and returns the user's bearer token.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, pw string) (*domain.Token, error) {
	user, err := u.Authenticate(ctx, emailAddr, pw)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		}
		return nil, err
	}

	token, err := u.IssueToken(ctx, user)
	if err != nil {
		return nil, err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, nil
}

// Authorize resolves a presented bearer key to its owner.
func (u *AuthUsecase) Authorize(ctx context.Context, key string) (*domain.User, error) {
	if key == "" {
		return nil, domain.ErrUnauthorized
	}

	token, err := u.tokens.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("find token: %w", err)
	}

	user, err := u.users.FindByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// mintToken stores a fresh key for userID, drawing a new key if the
// generated one collides with an existing token.
func (u *AuthUsecase) mintToken(ctx context.Context, userID string) (*domain.Token, error) {
	for range mintAttempts {
		key, err := newTokenKey()
		if err != nil {
			return nil, err
		}

		created, err := u.tokens.Create(ctx, &domain.Token{Key: key, UserID: userID})
		switch {
		case err == nil:
			return created, nil
		case errors.Is(err, domain.ErrTokenExists):
			return nil, err
		case errors.Is(err, domain.ErrTokenKeyConflict):
			u.logger.WarnContext(ctx, "generated token key already in use, retrying", "user_id", userID)
			continue
		default:
			return nil, fmt.Errorf("store token: %w", err)
		}
	}
	return nil, fmt.Errorf("store token: %w", domain.ErrTokenKeyConflict)
}

func newTokenKey() (string, error) {
	raw := make([]byte, tokenBytes)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
