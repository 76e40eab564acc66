package widget_handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"streamer_info/internal/middleware"
)

// NewRouter wires the overview page and the widget route.
func NewRouter(wh *WidgetHandler, corsOrigins string) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", wh.GetOverview).Methods("GET", "HEAD")
	router.Handle("/{channel}", middleware.NoCache(http.HandlerFunc(wh.GetWidget))).Methods("GET", "HEAD")

	router.NotFoundHandler = middleware.NoCache(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	return middleware.Wrap(router, corsOrigins)
}
