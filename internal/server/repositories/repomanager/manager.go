// Package repomanager selects the active storage backend at startup. Every
// backend is a variant of the same credential store contract; the core never
// sees which one is in use.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sbperudesarrollo/authbase/internal/dbx"
	"github.com/sbperudesarrollo/authbase/internal/server/repositories/users"
)

// Backend identifiers accepted in configuration.
const (
	BackendPostgres = "postgres"
	BackendInMemory = "inmemory"
)

// RepositoryManager hands out repositories bound to a DB handle and runs
// schema migrations where the backend needs them.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}

// New returns the manager for the configured backend identifier. Unknown
// identifiers are a startup error, not a silent fallback.
func New(backend string) (RepositoryManager, error) {
	switch backend {
	case BackendPostgres:
		return &PostgresRepositoryManager{}, nil
	case BackendInMemory:
		return NewInMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", backend)
	}
}
