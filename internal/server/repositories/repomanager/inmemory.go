package repomanager

import (
	"context"
	"database/sql"

	"github.com/sbperudesarrollo/authbase/internal/dbx"
	"github.com/sbperudesarrollo/authbase/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves the reference adapter. The DB handle is
// ignored; state lives for the process lifetime only.
type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewInMemoryRepository()}
}

func (m *InMemoryRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

// Store exposes the concrete adapter so callers can seed records.
func (m *InMemoryRepositoryManager) Store() *users.InMemoryRepository {
	return m.users
}
