package repository

import (
	"sync"

	"github.com/efs/todoapp/internal/models"
)

// MemoryUserRepository keeps users in a mutex-guarded map. The lock spans the
// existence check and the insert, which is what makes Save atomic.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]models.User),
	}
}

func (r *MemoryUserRepository) Save(user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return ErrExists
	}
	r.users[user.Username] = user
	return nil
}

func (r *MemoryUserRepository) Get(username string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}
