package memory

import (
	"context"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.usersByEmail[user.Email]; taken {
		return nil, domain.ErrDuplicateEmail
	}

	created := &domain.User{
		ID:           newID(),
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    r.s.now(),
	}
	r.s.users[created.ID] = created
	r.s.usersByEmail[created.Email] = created.ID
	return cloneUser(created), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.usersByEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(r.s.users[id]), nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}
