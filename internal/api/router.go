package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"meetpoint-service/internal/api/handlers"
	"meetpoint-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(svc handlers.MeetpointService, store ports.VenueStore, defaults handlers.Defaults) http.Handler {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware)

	meetpointHandler := &handlers.MeetpointHandler{Service: svc, Defaults: defaults}
	categoriesHandler := &handlers.CategoriesHandler{Store: store}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/meetpoint", meetpointHandler.Search).Methods(http.MethodPost)
	r.HandleFunc("/categories", categoriesHandler.List).Methods(http.MethodGet)

	return r
}
