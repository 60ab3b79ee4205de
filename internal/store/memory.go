package store

import (
	"context"
	"strings"
	"sync"

	"mediassist/internal/models"
)

// MemoryStore keeps one model in process memory. Identifiers start at 1 and
// are never reused.
type MemoryStore[M any, P Entity[M]] struct {
	mu     sync.RWMutex
	rows   []M
	nextID int64
}

func NewMemoryStore[M any, P Entity[M]]() *MemoryStore[M, P] {
	return &MemoryStore[M, P]{nextID: 1}
}

func (s *MemoryStore[M, P]) List(_ context.Context) ([]M, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]M, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *MemoryStore[M, P]) Get(_ context.Context, id int64) (M, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.rows[i], nil
	}
	var zero M
	return zero, ErrNotFound
}

func (s *MemoryStore[M, P]) Create(_ context.Context, rec *M) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	P(rec).SetID(s.nextID)
	s.nextID++
	s.rows = append(s.rows, *rec)
	return nil
}

func (s *MemoryStore[M, P]) Update(_ context.Context, rec *M) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(P(rec).GetID())
	if i < 0 {
		return ErrNotFound
	}
	s.rows[i] = *rec
	return nil
}

func (s *MemoryStore[M, P]) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	return nil
}

// index must be called with mu held.
func (s *MemoryStore[M, P]) index(id int64) int {
	for i := range s.rows {
		if P(&s.rows[i]).GetID() == id {
			return i
		}
	}
	return -1
}

type MemoryUserStore struct {
	mu     sync.RWMutex
	users  map[string]models.User
	nextID int64
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]models.User), nextID: 1}
}

func (s *MemoryUserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, ok := s.users[key]; ok {
		return ErrDuplicate
	}
	u.ID = s.nextID
	s.nextID++
	s.users[key] = *u
	return nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}
