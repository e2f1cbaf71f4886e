package repository

import (
	"errors"

	"github.com/efs/todoapp/internal/models"
)

// Sentinel outcomes shared by every store backend.
var (
	ErrExists   = errors.New("already exists")
	ErrNotFound = errors.New("not found")
)

// UserRepository is a keyed collection of registered users. Save is an atomic
// insert-if-absent: two concurrent saves of the same username resolve to one
// success and one ErrExists.
type UserRepository interface {
	Save(user models.User) error
	Get(username string) (models.User, error)
}

// TaskRepository is a keyed collection of tasks. Save is an atomic
// insert-if-absent keyed by task id and never overwrites an existing record.
type TaskRepository interface {
	Save(task models.Task) error
	Get(id string) (models.Task, error)
	ListByOwner(username string) ([]models.Task, error)
	Replace(task models.Task) error
	Delete(id string) error
}
