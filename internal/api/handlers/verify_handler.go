package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/voxology/assistant-backend/internal/application/services"
)

// VerifyHandler exposes the identity verification gate as a tool endpoint
type VerifyHandler struct {
	verificationService *services.VerificationService
}

// NewVerifyHandler creates a new verify handler
func NewVerifyHandler(verificationService *services.VerificationService) *VerifyHandler {
	return &VerifyHandler{verificationService: verificationService}
}

type verifyRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
}

// Verify handles POST /api/tools/verify
func (h *VerifyHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	identity, err := h.verificationService.Verify(r.Context(), req.FirstName, req.LastName, req.DateOfBirth)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"verified": true,
		"identity": identity,
	})
}
