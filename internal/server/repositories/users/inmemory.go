package users

import (
	"context"
	"strings"
	"sync"

	"github.com/sbperudesarrollo/authbase/internal/common"
	"github.com/sbperudesarrollo/authbase/internal/server/models"
)

// InMemoryRepository is the reference adapter: it honors the same contract as
// the SQL adapters without durable storage. Used for tests and local runs.
type InMemoryRepository struct {
	mu      sync.RWMutex
	byID    map[int64]*models.User
	byLogin map[string]int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:    make(map[int64]*models.User),
		byLogin: make(map[string]int64),
	}
}

// Seed inserts or replaces a record. Provisioning is out of scope for the
// core, so this is the only write path besides UpdatePasswordHash.
func (r *InMemoryRepository) Seed(user models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := user
	r.byID[u.ID] = &u
	r.byLogin[u.Username] = u.ID
}

func (r *InMemoryRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(username) == "" {
		return nil, common.ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byLogin[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	u := *r.byID[id]
	return &u, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *InMemoryRepository) UpdatePasswordHash(ctx context.Context, id int64, newHash string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if strings.TrimSpace(newHash) == "" {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	u.PasswordHash = newHash
	return true, nil
}
