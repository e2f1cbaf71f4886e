package repository

import (
	"database/sql"
	"fmt"

	"github.com/efs/todoapp/internal/models"
)

// SQLiteTaskRepository stores tasks in the tasks table keyed by id.
type SQLiteTaskRepository struct {
	db *sql.DB
}

func NewSQLiteTaskRepository(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db}
}

func (r *SQLiteTaskRepository) Save(task models.Task) error {
	query := `INSERT INTO tasks (id, description, due, owner) VALUES (?, ?, ?, ?)`

	_, err := r.db.Exec(query, task.Id, task.Description, nullable(task.Due), task.Owner)
	if isConstraintErr(err) {
		return ErrExists
	}
	if err != nil {
		return fmt.Errorf("Error trying to save the task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepository) Get(id string) (models.Task, error) {
	query := `SELECT id, description, due, owner FROM tasks WHERE id = ?`

	var task models.Task
	var due sql.NullString
	err := r.db.QueryRow(query, id).Scan(&task.Id, &task.Description, &due, &task.Owner)
	if err == sql.ErrNoRows {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("Error trying to get the task: %w", err)
	}
	if due.Valid {
		task.Due = due.String
	}
	return task, nil
}

func (r *SQLiteTaskRepository) ListByOwner(username string) ([]models.Task, error) {
	query := `SELECT id, description, due, owner FROM tasks WHERE owner = ?`

	rows, err := r.db.Query(query, username)
	if err != nil {
		return nil, fmt.Errorf("Error trying to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		var task models.Task
		var due sql.NullString
		if err := rows.Scan(&task.Id, &task.Description, &due, &task.Owner); err != nil {
			return nil, err
		}
		if due.Valid {
			task.Due = due.String
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *SQLiteTaskRepository) Replace(task models.Task) error {
	query := `UPDATE tasks SET description = ?, due = ?, owner = ? WHERE id = ?`

	result, err := r.db.Exec(query, task.Description, nullable(task.Due), task.Owner, task.Id)
	if err != nil {
		return fmt.Errorf("Error trying to update the task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteTaskRepository) Delete(id string) error {
	query := `DELETE FROM tasks WHERE id = ?`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("Error trying to delete the task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
