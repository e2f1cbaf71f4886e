package api

import (
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/efs/todoapp/internal/api/handlers"
	"github.com/efs/todoapp/internal/service"
)

// SetupRouter wires the two resource handlers onto a ServeMux. Method
// dispatch happens inside the handlers because an unmatched method must be a
// 400, and the catch-all makes every unrecognized path a 400 as well; there
// is no 404-for-missing-route on this surface.
func SetupRouter(todoService *service.ToDoService, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	userHandler := handlers.NewUserHandler(todoService, logger)
	taskHandler := handlers.NewTaskHandler(todoService, logger)

	mux.HandleFunc("/todo/user", userHandler.Handle)
	mux.HandleFunc("/todo/task", taskHandler.Collection)
	mux.HandleFunc("/todo/task/{id}", taskHandler.Item)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	return RequestLogger(logger, mux)
}
