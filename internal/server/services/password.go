package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sbperudesarrollo/authbase/internal/common"
	"github.com/sbperudesarrollo/authbase/internal/logging"
	"github.com/sbperudesarrollo/authbase/internal/server/password"
	"github.com/sbperudesarrollo/authbase/internal/server/repositories/users"
)

// RotationResult carries the generated plaintext back to the caller. It is
// returned exactly once and is not retrievable afterwards by any means.
type RotationResult struct {
	UserID   int64  `json:"userId"`
	Password string `json:"password"`
}

// PasswordService rotates a user's password to a freshly generated
// high-entropy value.
type PasswordService struct {
	repo   users.Repository
	logger logging.Logger
}

func NewPasswordService(repo users.Repository, logger logging.Logger) *PasswordService {
	return &PasswordService{
		repo:   repo,
		logger: logger.With("module", "password_service"),
	}
}

// Rotate generates a new password of the requested length, replaces the
// stored hash, and returns the plaintext. An unknown user yields
// common.ErrNotFound before the generator runs; an update that matches no
// row yields common.ErrUpdateConflict and the plaintext is discarded.
//
// Unlike login, the two failure modes stay distinguishable: rotation is an
// authenticated administrative action.
func (s *PasswordService) Rotate(ctx context.Context, userID int64, length int) (*RotationResult, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Warn(ctx, "password rotation requested for non-existent user", "user_id", userID)
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	plaintext, err := password.Generate(length)
	if err != nil {
		return nil, err
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, fmt.Errorf("hashing generated password: %w", err)
	}

	updated, err := s.repo.UpdatePasswordHash(ctx, user.ID, hash)
	if err != nil {
		return nil, fmt.Errorf("persisting password hash: %w", err)
	}
	if !updated {
		s.logger.Error(ctx, "failed to persist password change", "user_id", user.ID)
		return nil, common.ErrUpdateConflict
	}

	s.logger.Info(ctx, "password regenerated", "user_id", user.ID)

	return &RotationResult{UserID: user.ID, Password: plaintext}, nil
}
