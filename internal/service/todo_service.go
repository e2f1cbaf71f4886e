package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/efs/todoapp/internal/models"
	"github.com/efs/todoapp/internal/repository"
)

// AuthResult is the three-way outcome of authenticating a request.
type AuthResult int

const (
	// AuthMalformed means the auth header was missing or structurally invalid
	// before any identity lookup happened.
	AuthMalformed AuthResult = iota + 1
	// AuthUnknown means the credential decoded fine but the user is not
	// registered or the password does not match.
	AuthUnknown
	// AuthOK means the credential matches a registered user.
	AuthOK
)

// ToDoService composes the two stores and owns every business rule of the
// request pipeline: authentication, payload validation, id generation and
// ownership checks.
type ToDoService struct {
	users repository.UserRepository
	tasks repository.TaskRepository
}

func NewToDoService(users repository.UserRepository, tasks repository.TaskRepository) *ToDoService {
	return &ToDoService{
		users: users,
		tasks: tasks,
	}
}

// Authenticate classifies the raw auth header. The username is only
// meaningful when the result is AuthOK; the error is non-nil only for store
// failures. Passwords are compared in plaintext, a known limitation of the
// service.
func (s *ToDoService) Authenticate(header string) (AuthResult, string, error) {
	creds, ok := DecodeCredentials(header)
	if !ok {
		return AuthMalformed, "", nil
	}

	user, err := s.users.Get(creds.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return AuthUnknown, "", nil
	}
	if err != nil {
		return AuthUnknown, "", NewError(KindInternal, "looking up user: %v", err)
	}
	if user.Password != creds.Password {
		return AuthUnknown, "", nil
	}
	return AuthOK, creds.Username, nil
}

// RegisterUser stores a new user. Registration never overwrites: a taken
// username is a conflict.
func (s *ToDoService) RegisterUser(user models.User) error {
	if user.Username == "" || user.Password == "" {
		return NewError(KindMalformed, "username and password are required")
	}

	err := s.users.Save(user)
	if errors.Is(err, repository.ErrExists) {
		return NewError(KindConflict, "user %s exists", user.Username)
	}
	if err != nil {
		return NewError(KindInternal, "saving user: %v", err)
	}
	return nil
}

// ValidateTask enforces the task payload shape: description required, due
// optional but a calendar date. The parser diagnostic becomes the rejection
// reason and stays server-side.
func ValidateTask(task models.Task) error {
	if task.Description == "" {
		return NewError(KindMalformed, "description is required")
	}
	if task.Due != "" {
		if _, err := time.Parse("2006-01-02", task.Due); err != nil {
			return NewError(KindMalformed, "parsing due date: %v", err)
		}
	}
	return nil
}

// SaveTask assigns a fresh id, stamps the caller as owner and inserts the
// task. Id uniqueness is a hard invariant: on the improbable collision the id
// is drawn again.
func (s *ToDoService) SaveTask(task models.Task, owner string) (string, error) {
	if err := ValidateTask(task); err != nil {
		return "", err
	}

	task.Owner = owner
	for {
		task.Id = uuid.NewString()
		err := s.tasks.Save(task)
		if errors.Is(err, repository.ErrExists) {
			continue
		}
		if err != nil {
			return "", NewError(KindInternal, "saving task: %v", err)
		}
		return task.Id, nil
	}
}

// TasksByOwner lists the caller's tasks in no guaranteed order.
func (s *ToDoService) TasksByOwner(owner string) ([]models.Task, error) {
	tasks, err := s.tasks.ListByOwner(owner)
	if err != nil {
		return nil, NewError(KindInternal, "listing tasks: %v", err)
	}
	return tasks, nil
}

// GetTask fetches one task for its owner. Existence is checked before
// ownership, so an unknown id reads as not found even for a caller who would
// otherwise be forbidden.
func (s *ToDoService) GetTask(id, username string) (models.Task, error) {
	return s.fetchOwned(id, username)
}

// UpdateTask replaces the description and due date of a task the caller owns.
// The id is preserved and the owner is re-stamped from the caller; the prior
// ownership check makes that a no-op, so the post-condition is that ownership
// never transfers here.
func (s *ToDoService) UpdateTask(id string, task models.Task, username string) (models.Task, error) {
	if err := ValidateTask(task); err != nil {
		return models.Task{}, err
	}
	if _, err := s.fetchOwned(id, username); err != nil {
		return models.Task{}, err
	}

	task.Id = id
	task.Owner = username
	err := s.tasks.Replace(task)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Task{}, NewError(KindNotFound, "task %s does not exist", id)
	}
	if err != nil {
		return models.Task{}, NewError(KindInternal, "updating task: %v", err)
	}
	return task, nil
}

// DeleteTask removes a task the caller owns.
func (s *ToDoService) DeleteTask(id, username string) error {
	if _, err := s.fetchOwned(id, username); err != nil {
		return err
	}

	err := s.tasks.Delete(id)
	if errors.Is(err, repository.ErrNotFound) {
		return NewError(KindNotFound, "task %s does not exist", id)
	}
	if err != nil {
		return NewError(KindInternal, "deleting task: %v", err)
	}
	return nil
}

func (s *ToDoService) fetchOwned(id, username string) (models.Task, error) {
	task, err := s.tasks.Get(id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Task{}, NewError(KindNotFound, "task %s does not exist", id)
	}
	if err != nil {
		return models.Task{}, NewError(KindInternal, "getting task: %v", err)
	}
	if task.Owner != username {
		return models.Task{}, NewError(KindForbidden, "task %s belongs to another user", id)
	}
	return task, nil
}
