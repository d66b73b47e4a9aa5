// Package services contains the server-side business logic: credential
// verification with token issuance, and administrative password rotation.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sbperudesarrollo/authbase/internal/common"
	"github.com/sbperudesarrollo/authbase/internal/logging"
	"github.com/sbperudesarrollo/authbase/internal/server/auth"
	"github.com/sbperudesarrollo/authbase/internal/server/password"
	"github.com/sbperudesarrollo/authbase/internal/server/repositories/users"
)

// fallbackHash is a well-formed bcrypt digest compared against the supplied
// password whenever no account matches, keeping the unknown-user path in the
// same cost class as a wrong password.
const fallbackHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService verifies login attempts and issues bearer tokens.
type AuthService struct {
	repo   users.Repository
	issuer *auth.Issuer
	logger logging.Logger
}

func NewAuthService(repo users.Repository, issuer *auth.Issuer, logger logging.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		issuer: issuer,
		logger: logger.With("module", "auth_service"),
	}
}

// Login verifies the username/password pair and returns a fresh token on
// success. Unknown user and wrong password are deliberately
// indistinguishable: both yield common.ErrUnauthorized and a warning log
// carrying the attempted username only. Storage failures propagate as-is and
// are never converted into an authorization failure.
func (s *AuthService) Login(ctx context.Context, username, plaintext string) (*auth.TokenResult, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Burn a hash comparison so the caller cannot time the difference
			// between an unknown user and a wrong password.
			password.Verify(plaintext, fallbackHash)
			s.logFailedAttempt(ctx, username)
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !password.Verify(plaintext, user.PasswordHash) {
		s.logFailedAttempt(ctx, username)
		return nil, common.ErrUnauthorized
	}

	result, err := s.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	return result, nil
}

func (s *AuthService) logFailedAttempt(ctx context.Context, username string) {
	s.logger.Warn(ctx, "failed login attempt", "username", username)
}
