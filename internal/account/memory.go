package account

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store with the same uniqueness behavior
// as the postgres implementation. Used in tests and for running the
// service without a database.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]*Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]*Account)}
}

func (s *MemoryStore) key(websiteID int64, email string) string {
	return fmt.Sprintf("%d:%s", websiteID, strings.ToLower(email))
}

func (s *MemoryStore) FindByEmail(ctx context.Context, websiteID int64, email string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[s.key(websiteID, email)]
	if !ok {
		return nil, nil
	}

	cp := *a
	return &cp, nil
}

func (s *MemoryStore) Create(ctx context.Context, a *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.key(a.WebsiteID, a.Email)
	if _, exists := s.accounts[key]; exists {
		return ErrConflict
	}

	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC()

	cp := *a
	s.accounts[key] = &cp
	return nil
}
