package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/votehub/api/internal/core/domain"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps the core error taxonomy onto status codes:
// NotFound -> 404, PollNotActive/InvalidArgument -> 400, SaveFailed -> 500.
func respondDomainError(w http.ResponseWriter, err error) {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		respondError(w, http.StatusNotFound, notFound.Error())
		return
	}

	if errors.Is(err, domain.ErrPollNotActive) {
		respondError(w, http.StatusBadRequest, "this poll is not currently active")
		return
	}

	var invalidArg *domain.InvalidArgumentError
	if errors.As(err, &invalidArg) {
		respondError(w, http.StatusBadRequest, invalidArg.Reason)
		return
	}

	slog.Error("request failed", slog.Any("error", err))
	respondError(w, http.StatusInternalServerError, "internal server error")
}
