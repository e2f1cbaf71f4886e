package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"regexp"

	"github.com/charmbracelet/log"

	"github.com/efs/todoapp/internal/models"
	"github.com/efs/todoapp/internal/service"
)

// taskIdPattern is the canonical UUID shape accepted in item paths: versions
// 1-5 and a correctly formed variant nibble. Anything else is a bad request,
// not a missing task.
var taskIdPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

type TaskHandler struct {
	todoService *service.ToDoService
	log         *log.Logger
}

func NewTaskHandler(todoService *service.ToDoService, logger *log.Logger) *TaskHandler {
	return &TaskHandler{
		todoService: todoService,
		log:         logger,
	}
}

// Collection serves /todo/task.
func (h *TaskHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

// Item serves /todo/task/{id}.
func (h *TaskHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !taskIdPattern.MatchString(id) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func (h *TaskHandler) create(w http.ResponseWriter, r *http.Request) {
	task, err := readTaskBody(r)
	if err != nil {
		fail(w, h.log, err)
		return
	}
	username, err := h.authenticate(r)
	if err != nil {
		fail(w, h.log, err)
		return
	}

	id, err := h.todoService.SaveTask(task, username)
	if err != nil {
		fail(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *TaskHandler) list(w http.ResponseWriter, r *http.Request) {
	username, err := h.authenticate(r)
	if err != nil {
		fail(w, h.log, err)
		return
	}

	tasks, err := h.todoService.TasksByOwner(username)
	if err != nil {
		fail(w, h.log, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	username, err := h.authenticate(r)
	if err != nil {
		fail(w, h.log, err)
		return
	}

	task, err := h.todoService.GetTask(id, username)
	if err != nil {
		fail(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	task, err := readTaskBody(r)
	if err != nil {
		fail(w, h.log, err)
		return
	}
	username, err := h.authenticate(r)
	if err != nil {
		fail(w, h.log, err)
		return
	}

	updated, err := h.todoService.UpdateTask(id, task, username)
	if err != nil {
		fail(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *TaskHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	username, err := h.authenticate(r)
	if err != nil {
		fail(w, h.log, err)
		return
	}

	if err := h.todoService.DeleteTask(id, username); err != nil {
		fail(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// authenticate turns the three-way auth outcome into the typed errors the
// status mapping understands. A malformed header is the client's fault (400),
// an unknown identity is unauthorized (401).
func (h *TaskHandler) authenticate(r *http.Request) (string, error) {
	result, username, err := h.todoService.Authenticate(r.Header.Get("auth"))
	if err != nil {
		return "", err
	}
	switch result {
	case service.AuthMalformed:
		return "", service.NewError(service.KindMalformed, "missing or malformed auth header")
	case service.AuthUnknown:
		return "", service.NewError(service.KindUnauthenticated, "unknown user or wrong password")
	}
	return username, nil
}

// readTaskBody parses and structurally validates a task payload. Validation
// runs before authentication so an invalid payload stays a 400 even when the
// credential is also bad.
func readTaskBody(r *http.Request) (models.Task, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return models.Task{}, service.NewError(service.KindMalformed, "reading body: %v", err)
	}
	if err := validateBody(taskSchema, body); err != nil {
		return models.Task{}, err
	}

	var task models.Task
	if err := json.Unmarshal(body, &task); err != nil {
		return models.Task{}, service.NewError(service.KindMalformed, "parsing body: %v", err)
	}
	return task, nil
}
