// Package memory is a process-local storage backend. It backs STORAGE=memory
// for local runs and tests, and enforces the same uniqueness rules as the
// postgres schema.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/ErlanBelekov/task-tracker/internal/repository"
	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	users        map[string]*domain.User // by id
	usersByEmail map[string]string       // email -> user id

	tokensByKey  map[string]*domain.Token
	tokensByUser map[string]string // user id -> key

	tasks []*domain.Task // insertion order

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:        make(map[string]*domain.User),
		usersByEmail: make(map[string]string),
		tokensByKey:  make(map[string]*domain.Token),
		tokensByUser: make(map[string]string),
		now:          time.Now,
	}
}

// Ping always succeeds; it lets the store stand in for a database in health checks.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

func (s *Store) Totals(_ context.Context) (repository.Totals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return repository.Totals{
		Users:  int64(len(s.users)),
		Tokens: int64(len(s.tokensByKey)),
		Tasks:  int64(len(s.tasks)),
	}, nil
}

// Users, Tokens and Tasks return repository views sharing this store.

func (s *Store) Users() *UserRepository   { return &UserRepository{s: s} }
func (s *Store) Tokens() *TokenRepository { return &TokenRepository{s: s} }
func (s *Store) Tasks() *TaskRepository   { return &TaskRepository{s: s} }

func newID() string {
	return uuid.NewString()
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func cloneToken(t *domain.Token) *domain.Token {
	c := *t
	return &c
}

func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.CompletedDate != nil {
		d := *t.CompletedDate
		c.CompletedDate = &d
	}
	return &c
}
