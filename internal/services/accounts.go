// Package services contains the business logic: account lifecycle,
// wellness tracking, photo storage, and the cascading account deletion
// workflow.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/calmouapp/calmou/internal/common"
	"github.com/calmouapp/calmou/internal/credentials"
	"github.com/calmouapp/calmou/internal/logging"
	"github.com/calmouapp/calmou/internal/models"
	"github.com/calmouapp/calmou/internal/repositories/users"
	"github.com/calmouapp/calmou/internal/tokens"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AccountService handles registration, login, token refresh, and account
// reads/updates.
type AccountService struct {
	users  users.Repository
	creds  *credentials.Service
	tokens *tokens.Service
	log    logging.Logger
}

func NewAccountService(repo users.Repository, creds *credentials.Service, ts *tokens.Service, log logging.Logger) *AccountService {
	return &AccountService{users: repo, creds: creds, tokens: ts, log: log}
}

// Register creates a new account and signs it in.
func (s *AccountService) Register(ctx context.Context, candidate models.NewUser) (*models.User, *TokenPair, error) {
	user, err := s.users.Create(ctx, candidate)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}
	s.log.Info(ctx, "account registered", "user_id", user.ID)
	return user, pair, nil
}

// Login verifies the credentials and, on success, returns the user plus a new
// token pair. An unknown email and a wrong password are indistinguishable to
// the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrUnauthorized
		}
		return nil, nil, common.ErrInternal
	}

	ok, err := s.creds.Verify(password, user.Credential)
	if err != nil {
		s.log.Warn(ctx, "credential verification failed", "user_id", user.ID, "error", err)
		return nil, nil, common.ErrUnauthorized
	}
	if !ok {
		return nil, nil, common.ErrUnauthorized
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh mints a new access token from a valid refresh token. The refresh
// token itself is never extended or reissued.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	access, err := s.tokens.Refresh(refreshToken)
	if err != nil {
		return "", common.ErrUnauthorized
	}
	return access, nil
}

func (s *AccountService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *AccountService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *AccountService) Update(ctx context.Context, id int64, patch models.UserPatch) error {
	return s.users.Update(ctx, id, patch)
}

func (s *AccountService) UpdateProfile(ctx context.Context, id int64, patch models.ProfilePatch) error {
	return s.users.UpdateProfile(ctx, id, patch)
}

func (s *AccountService) issuePair(userID int64) (*TokenPair, error) {
	access, err := s.tokens.IssueAccess(userID)
	if err != nil {
		return nil, fmt.Errorf("error issuing access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(userID)
	if err != nil {
		return nil, fmt.Errorf("error issuing refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
