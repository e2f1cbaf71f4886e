package repository

import (
	"sync"

	"github.com/efs/todoapp/internal/models"
)

// MemoryTaskRepository keeps tasks in a mutex-guarded map keyed by id.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]models.Task
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{
		tasks: make(map[string]models.Task),
	}
}

func (r *MemoryTaskRepository) Save(task models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.Id]; ok {
		return ErrExists
	}
	r.tasks[task.Id] = task
	return nil
}

func (r *MemoryTaskRepository) Get(id string) (models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return models.Task{}, ErrNotFound
	}
	return task, nil
}

// ListByOwner returns the caller's tasks in no particular order.
func (r *MemoryTaskRepository) ListByOwner(username string) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]models.Task, 0)
	for _, task := range r.tasks {
		if task.Owner == username {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (r *MemoryTaskRepository) Replace(task models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.Id]; !ok {
		return ErrNotFound
	}
	r.tasks[task.Id] = task
	return nil
}

func (r *MemoryTaskRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}
