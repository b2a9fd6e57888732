package server

import "time"

// Limits shared by the league API and the metrics listener.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
)

// shutdownTimeout bounds the drain and the final snapshot save; tests shorten it.
var shutdownTimeout = 15 * time.Second
