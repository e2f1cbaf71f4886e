// Package client is a small typed client for the todo service, used by
// integration tests and scripts.
package client

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/efs/todoapp/internal/models"
)

type Client struct {
	baseUrl    string
	username   string
	password   string
	httpClient *http.Client
}

func New(baseUrl string) *Client {
	return &Client{
		baseUrl:    baseUrl,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithCredentials returns a copy of the client that authenticates as the
// given user on task requests.
func (c *Client) WithCredentials(username, password string) *Client {
	copied := *c
	copied.username = username
	copied.password = password
	return &copied
}

// AuthHeader renders the credential the way the service expects it: two
// colon-separated base64 segments.
func AuthHeader(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username)) + ":" +
		base64.StdEncoding.EncodeToString([]byte(password))
}

func (c *Client) Register(username, password string) error {
	user := models.User{Username: username, Password: password}
	resp, err := c.do(http.MethodPost, "/todo/user", user, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("register: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) CreateTask(task models.Task) (string, error) {
	resp, err := c.do(http.MethodPost, "/todo/task", task, true)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("create task: unexpected status %d", resp.StatusCode)
	}

	var created struct {
		Id string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("parse create response: %w", err)
	}
	return created.Id, nil
}

func (c *Client) Tasks() ([]models.Task, error) {
	resp, err := c.do(http.MethodGet, "/todo/task", nil, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list tasks: unexpected status %d", resp.StatusCode)
	}

	var tasks []models.Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("parse task list: %w", err)
	}
	return tasks, nil
}

func (c *Client) Task(id string) (models.Task, error) {
	resp, err := c.do(http.MethodGet, "/todo/task/"+id, nil, true)
	if err != nil {
		return models.Task{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Task{}, fmt.Errorf("get task: unexpected status %d", resp.StatusCode)
	}

	var task models.Task
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return models.Task{}, fmt.Errorf("parse task: %w", err)
	}
	return task, nil
}

func (c *Client) UpdateTask(id string, task models.Task) (models.Task, error) {
	resp, err := c.do(http.MethodPut, "/todo/task/"+id, task, true)
	if err != nil {
		return models.Task{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Task{}, fmt.Errorf("update task: unexpected status %d", resp.StatusCode)
	}

	var updated models.Task
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return models.Task{}, fmt.Errorf("parse updated task: %w", err)
	}
	return updated, nil
}

func (c *Client) DeleteTask(id string) error {
	resp, err := c.do(http.MethodDelete, "/todo/task/"+id, nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delete task: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) do(method, path string, payload any, authed bool) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, c.baseUrl+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("auth", AuthHeader(c.username, c.password))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}
