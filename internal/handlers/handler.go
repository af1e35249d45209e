package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/AnshRaj112/captionly-backend/internal/logging"
	"github.com/AnshRaj112/captionly-backend/internal/models"
	"github.com/AnshRaj112/captionly-backend/internal/services"
)

const maxBodyBytes = 1 << 20

type AccessCodes interface {
	Issue(ctx context.Context, phoneNumber string) (string, error)
	Validate(ctx context.Context, phoneNumber, accessCode string) error
}

type Generator interface {
	GenerateCaptions(ctx context.Context, socialNetwork, subject, tone string) ([]string, error)
	GenerateIdeas(ctx context.Context, topic string) ([]string, error)
	GenerateCaptionsFromIdea(ctx context.Context, idea string) ([]string, error)
}

type Contents interface {
	Save(ctx context.Context, phoneNumber, topic string, data []string) (*models.GeneratedContent, error)
	ListForUser(ctx context.Context, phoneNumber string) ([]models.GeneratedContent, error)
	Remove(ctx context.Context, id string) error
}

// Timeouts bound each collaborator call made while serving a request.
type Timeouts struct {
	Storage    time.Duration
	SMS        time.Duration
	Generation time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		Storage:    5 * time.Second,
		SMS:        10 * time.Second,
		Generation: 30 * time.Second,
	}
}

type Handler struct {
	codes     AccessCodes
	generator Generator
	contents  Contents
	log       logging.Logger
	timeouts  Timeouts
}

func New(codes AccessCodes, generator Generator, contents Contents, log logging.Logger, timeouts Timeouts) *Handler {
	return &Handler{
		codes:     codes,
		generator: generator,
		contents:  contents,
		log:       log,
		timeouts:  timeouts,
	}
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeBody reads a JSON body into dst, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}

// writeError maps validation failures to 400 and everything else to 500
// carrying the underlying message.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, services.ErrValidation) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	h.log.Error(r.Context(), op+" failed",
		"request_id", logging.RequestID(r.Context()),
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
