package repository

import (
	"database/sql"
	"fmt"

	"github.com/efs/todoapp/internal/models"
)

// SQLiteUserRepository stores users in the users table. The primary key on
// username gives Save its insert-if-absent atomicity.
type SQLiteUserRepository struct {
	db *sql.DB
}

func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

func (r *SQLiteUserRepository) Save(user models.User) error {
	query := `INSERT INTO users (username, password) VALUES (?, ?)`

	_, err := r.db.Exec(query, user.Username, user.Password)
	if isConstraintErr(err) {
		return ErrExists
	}
	if err != nil {
		return fmt.Errorf("Error trying to save the user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepository) Get(username string) (models.User, error) {
	query := `SELECT username, password FROM users WHERE username = ?`

	var user models.User
	err := r.db.QueryRow(query, username).Scan(&user.Username, &user.Password)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("Error trying to get the user: %w", err)
	}
	return user, nil
}
