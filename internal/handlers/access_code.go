package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/AnshRaj112/captionly-backend/internal/logging"
	"github.com/AnshRaj112/captionly-backend/internal/services"
)

type CreateAccessCodeRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

type ValidateAccessCodeRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	AccessCode  string `json:"accessCode"`
}

// CreateNewAccessCode issues a one-time code and texts it to the phone number.
func (h *Handler) CreateNewAccessCode(w http.ResponseWriter, r *http.Request) {
	var req CreateAccessCodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeouts.Storage+h.timeouts.SMS)
	defer cancel()

	if _, err := h.codes.Issue(ctx, req.PhoneNumber); err != nil {
		h.writeError(w, r, "create access code", err)
		return
	}

	h.log.Info(r.Context(), "access code issued",
		"request_id", logging.RequestID(r.Context()),
		"phone_number", req.PhoneNumber,
	)
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// ValidateAccessCode checks a submitted code and consumes it on success.
func (h *Handler) ValidateAccessCode(w http.ResponseWriter, r *http.Request) {
	var req ValidateAccessCodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeouts.Storage)
	defer cancel()

	err := h.codes.Validate(ctx, req.PhoneNumber, req.AccessCode)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	case errors.Is(err, services.ErrAccountNotFound):
		writeJSON(w, http.StatusNotFound, MessageResponse{Message: "Phone number not correct"})
	case errors.Is(err, services.ErrInvalidAccessCode):
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "Invalid access code"})
	default:
		h.writeError(w, r, "validate access code", err)
	}
}
