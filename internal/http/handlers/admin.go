package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/nba-league-service/internal/http/requestutil"
	"github.com/preston-bernstein/nba-league-service/internal/logging"
)

// SnapshotSaver persists the league on demand.
type SnapshotSaver interface {
	SaveNow(ctx context.Context) error
}

// AdminHandler exposes admin-only endpoints (e.g., snapshot save).
type AdminHandler struct {
	saver  SnapshotSaver
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(saver SnapshotSaver, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		saver:  saver,
		token:  token,
		logger: logger,
	}
}

// Register attaches the admin routes to r.
func (h *AdminHandler) Register(r *mux.Router) {
	r.HandleFunc("/admin/snapshots", h.SaveSnapshot).Methods(http.MethodPost)
}

// SaveSnapshot writes the league to the configured snapshot backend.
// Guarded by ADMIN_TOKEN; returns 401 if missing/invalid.
func (h *AdminHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.saver == nil {
		writeError(w, r, http.StatusServiceUnavailable, "snapshot backend not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	if err := h.saver.SaveNow(r.Context()); err != nil {
		logging.Error(logger, "admin snapshot save failed", err)
		writeError(w, r, http.StatusInternalServerError, "failed to save snapshot", logger)
		return
	}

	logging.Info(logger, "admin snapshot saved")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := requestutil.BearerToken(r)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
