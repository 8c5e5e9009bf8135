package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"meetpoint-service/internal/api/dto"
	"meetpoint-service/internal/ports"
)

// CategoriesHandler lists the distinct venue categories, so the consumer
// can populate its filter control from the data actually in the store.
type CategoriesHandler struct {
	Store ports.VenueStore
}

func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Store.Categories(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list categories failed")
		writeError(w, r, http.StatusBadGateway, "STORE_UNAVAILABLE", "venue store unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CategoriesResponse{Categories: categories})
}
