package memory

import (
	"context"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
)

type TokenRepository struct {
	s *Store
}

func (r *TokenRepository) Create(_ context.Context, token *domain.Token) (*domain.Token, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[token.UserID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	if _, ok := r.s.tokensByUser[token.UserID]; ok {
		return nil, domain.ErrTokenExists
	}
	if _, ok := r.s.tokensByKey[token.Key]; ok {
		return nil, domain.ErrTokenKeyConflict
	}

	created := &domain.Token{
		Key:       token.Key,
		UserID:    token.UserID,
		CreatedAt: r.s.now(),
	}
	r.s.tokensByKey[created.Key] = created
	r.s.tokensByUser[created.UserID] = created.Key
	return cloneToken(created), nil
}

func (r *TokenRepository) FindByUserID(_ context.Context, userID string) (*domain.Token, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	key, ok := r.s.tokensByUser[userID]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	return cloneToken(r.s.tokensByKey[key]), nil
}

func (r *TokenRepository) FindByKey(_ context.Context, key string) (*domain.Token, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tokensByKey[key]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	return cloneToken(t), nil
}
