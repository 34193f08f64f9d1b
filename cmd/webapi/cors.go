package main

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// applyCORSHandler lets the desktop webview, served from its own origin, call the local API.
func applyCORSHandler(h http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS", "DELETE", "PUT"}),
		handlers.AllowedOrigins([]string{"*"}),
	)(h)
}
