package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/efs/todoapp/internal/models"
	"github.com/efs/todoapp/internal/service"
)

type UserHandler struct {
	todoService *service.ToDoService
	log         *log.Logger
}

func NewUserHandler(todoService *service.ToDoService, logger *log.Logger) *UserHandler {
	return &UserHandler{
		todoService: todoService,
		log:         logger,
	}
}

// Handle serves /todo/user. Only POST is recognized; anything else is a bad
// request, same as an unknown path.
func (h *UserHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	h.register(w, r)
}

func (h *UserHandler) register(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		fail(w, h.log, service.NewError(service.KindMalformed, "reading body: %v", err))
		return
	}
	if err := validateBody(userSchema, body); err != nil {
		fail(w, h.log, err)
		return
	}

	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		fail(w, h.log, service.NewError(service.KindMalformed, "parsing body: %v", err))
		return
	}

	if err := h.todoService.RegisterUser(user); err != nil {
		fail(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
