package http

import (
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/nba-league-service/internal/http/handlers"
)

// NewRouter registers league routes, and admin routes when admin is set.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = nethttp.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = nethttp.HandlerFunc(handlers.MethodNotAllowed)

	handler.Register(r)
	if admin != nil {
		admin.Register(r)
	}
	return r
}
