package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"supplycore/internal/core"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// writeMutationError maps store errors onto HTTP statuses: not-found to 404,
// blocked rules to 422, everything else to 400.
func writeMutationError(w http.ResponseWriter, err error) {
	var notFound core.ErrNotFound
	if errors.As(err, &notFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	var blocked core.RuleViolationError
	if errors.As(err, &blocked) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      err.Error(),
			"violations": blocked.Result.Violations,
		})
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}
