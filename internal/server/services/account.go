// Package services contains server-side business logic. This file implements
// AccountService, which handles registration, login, and session checks over
// the credential store, the password hasher, and the token codec.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/dsemenov/authkeeper/internal/common"
	"github.com/dsemenov/authkeeper/internal/server/auth"
	"github.com/dsemenov/authkeeper/internal/server/config"
	"github.com/dsemenov/authkeeper/internal/server/models"
	"github.com/dsemenov/authkeeper/internal/server/repositories/users"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 50
	passwordMinLen = 6
	// bcrypt ignores input beyond 72 bytes, so longer passwords are rejected
	// up front instead of being silently truncated.
	passwordMaxLen = 72
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// AuthResult bundles the persisted user with a freshly issued session token.
type AuthResult struct {
	User  *models.User
	Token string
}

// AccountService provides the three credential/session operations:
// - Register: validate, create the user, issue a token
// - Login: verify credentials and issue a token
// - CheckAuth: verify a token and confirm the account still exists
//
// The signing secret and token validity are immutable after construction;
// the service holds no per-request state.
type AccountService struct {
	repo          users.Repository
	hasher        *auth.PasswordHasher
	jwtSecret     []byte
	tokenValidity time.Duration
}

// NewAccountService constructs an AccountService from its collaborators and
// the server config.
func NewAccountService(repo users.Repository, hasher *auth.PasswordHasher, cfg *config.Config) *AccountService {
	return &AccountService{
		repo:          repo,
		hasher:        hasher,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// validateRegistration checks username and password against the input schema
// and reports the first violated rule.
func validateRegistration(username, password string) error {
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return fmt.Errorf("%w: username must be %d-%d characters", common.ErrValidation, usernameMinLen, usernameMaxLen)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: username may contain only letters, digits and underscore", common.ErrValidation)
	}
	if len(password) < passwordMinLen {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, passwordMinLen)
	}
	if len(password) > passwordMaxLen {
		return fmt.Errorf("%w: password must be at most %d bytes", common.ErrValidation, passwordMaxLen)
	}
	return nil
}

// Register creates a new user and issues a session token. The pre-insert
// lookup is only a fast path; the store's uniqueness constraint reported by
// Create is the authoritative duplicate signal.
func (s *AccountService) Register(ctx context.Context, username, password string) (*AuthResult, error) {

	if err := validateRegistration(username, password); err != nil {
		return nil, err
	}

	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return nil, common.ErrUsernameTaken
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user, err := s.repo.Create(ctx, &models.User{Username: username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			// lost the race with a concurrent registration
			return nil, common.ErrUsernameTaken
		}
		return nil, common.ErrorInternal
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies the supplied credentials and issues a session token. An
// unknown username and a wrong password produce the identical
// ErrInvalidCredentials outcome.
func (s *AccountService) Login(ctx context.Context, username, password string) (*AuthResult, error) {

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{User: user, Token: token}, nil
}

// CheckAuth verifies the session token and re-fetches the user by id to
// confirm the account still exists. Token problems surface as
// ErrInvalidToken/ErrTokenExpired, a vanished account as ErrorNotFound;
// callers are expected to treat all of these as "not authenticated".
func (s *AccountService) CheckAuth(ctx context.Context, token string) (*models.User, error) {

	if token == "" {
		return nil, common.ErrInvalidToken
	}

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

func (s *AccountService) issueToken(user *models.User) (string, error) {
	return auth.GenerateToken(user.ID, user.Username, s.jwtSecret, s.tokenValidity)
}
