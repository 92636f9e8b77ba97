package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/voxology/assistant-backend/internal/application/services"
	"github.com/voxology/assistant-backend/internal/domain/entities"
)

// BookingHandler exposes appointment booking as a tool endpoint
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Book handles POST /api/tools/book
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	outcome, err := h.bookingService.Book(r.Context(), &req)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, outcome)
}
