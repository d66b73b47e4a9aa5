// Package users defines the credential store contract and its adapters.
//
// Contract semantics, shared by every adapter:
//
//   - Absent is not an error class of its own: lookups return
//     common.ErrNotFound, which callers match with errors.Is and treat as a
//     valid outcome, distinct from storage failures.
//   - Transport/connection failures wrap common.ErrStorageUnavailable and
//     are never collapsed into "not found".
//   - Context cancellation propagates as the context's own error so callers
//     can tell an aborted request from an authoritative result.
//   - Each call is a single round trip; retry policy belongs to the caller.
package users

import (
	"context"

	"github.com/sbperudesarrollo/authbase/internal/server/models"
)

// Repository is the storage-agnostic gateway to credential records. The
// authentication core is indifferent to which adapter is active.
type Repository interface {
	// FindByUsername looks up a record by its case-sensitive username.
	// A blank username yields common.ErrNotFound without a storage call.
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID looks up a record by its numeric id.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// UpdatePasswordHash atomically replaces the stored hash for one record.
	// An empty newHash is rejected locally and reported as (false, nil).
	// Zero matched rows also yield (false, nil), not an error.
	UpdatePasswordHash(ctx context.Context, id int64, newHash string) (bool, error)
}
