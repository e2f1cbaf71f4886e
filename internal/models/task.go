package models

// Task is one to-do item. Owner is the username stamped at creation time and
// is never rendered to clients.
type Task struct {
	Id          string `json:"id"`
	Description string `json:"description"`
	Due         string `json:"due,omitempty"`
	Owner       string `json:"-"`
}
