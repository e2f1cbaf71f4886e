package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/efs/todoapp/internal/service"
)

// statusOf maps an outcome kind to the status rendered to the client.
// Internal failures deliberately render as 400 as well; there is no 5xx
// surface, they are only distinguished in the logs.
func statusOf(err error) int {
	switch service.KindOf(err) {
	case service.KindMalformed:
		return http.StatusBadRequest
	case service.KindUnauthenticated:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// fail ends the request with the mapped status and an empty body. Validation
// diagnostics are never echoed to the client.
func fail(w http.ResponseWriter, logger *log.Logger, err error) {
	if service.KindOf(err) == service.KindInternal {
		logger.Error("internal failure", "err", err)
	} else {
		logger.Debug("request rejected", "err", err)
	}
	w.WriteHeader(statusOf(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
