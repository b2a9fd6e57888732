package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-league-service/internal/domain"
	"github.com/preston-bernstein/nba-league-service/internal/http/middleware"
	"github.com/preston-bernstein/nba-league-service/internal/logging"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeDomainError maps league errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	writeError(w, r, statusFor(err), err.Error(), logger)
}

func statusFor(err error) int {
	if vErr, ok := domain.AsValidationError(err); ok {
		switch vErr.Kind {
		case domain.KindNotFound:
			return http.StatusNotFound
		case domain.KindDuplicate:
			return http.StatusConflict
		default:
			return http.StatusBadRequest
		}
	}
	if _, ok := domain.AsCapabilityError(err); ok {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// decodeBody reads a JSON request body into dest, rejecting unknown fields and trailing data.
func decodeBody(r *http.Request, dest any) error {
	if r.Body == nil {
		return errors.New("request body required")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body required")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid request body: trailing data")
	}
	return nil
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}

// NotFound answers unmatched routes with the JSON error body.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", nil)
}

// MethodNotAllowed answers known paths called with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
}
