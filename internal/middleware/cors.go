package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// Configure CORS and wrap handler with CORS middleware
func ConfigureCORS(handler http.Handler, origins string) http.Handler {

	corsConfig := cors.New(cors.Options{
		AllowedOrigins: strings.Split(origins, ","),
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		ExposedHeaders: []string{"X-Widget-Stale"},
	})

	corsHandler := corsConfig.Handler(handler)

	return corsHandler
}
