package handlers

import (
	"context"
	"net/http"
)

type GeneratePostCaptionsRequest struct {
	SocialNetwork string `json:"socialNetwork"`
	Subject       string `json:"subject"`
	Tone          string `json:"tone"`
}

type GetPostIdeasRequest struct {
	Topic string `json:"topic"`
}

type CreateCaptionsFromIdeasRequest struct {
	Idea string `json:"idea"`
}

type GeneratedResponse struct {
	Data []string `json:"data"`
}

func (h *Handler) GeneratePostCaptions(w http.ResponseWriter, r *http.Request) {
	var req GeneratePostCaptionsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeouts.Generation)
	defer cancel()

	captions, err := h.generator.GenerateCaptions(ctx, req.SocialNetwork, req.Subject, req.Tone)
	if err != nil {
		h.writeError(w, r, "generate post captions", err)
		return
	}
	writeJSON(w, http.StatusOK, GeneratedResponse{Data: captions})
}

func (h *Handler) GetPostIdeas(w http.ResponseWriter, r *http.Request) {
	var req GetPostIdeasRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeouts.Generation)
	defer cancel()

	ideas, err := h.generator.GenerateIdeas(ctx, req.Topic)
	if err != nil {
		h.writeError(w, r, "get post ideas", err)
		return
	}
	writeJSON(w, http.StatusOK, GeneratedResponse{Data: ideas})
}

func (h *Handler) CreateCaptionsFromIdeas(w http.ResponseWriter, r *http.Request) {
	var req CreateCaptionsFromIdeasRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeouts.Generation)
	defer cancel()

	captions, err := h.generator.GenerateCaptionsFromIdea(ctx, req.Idea)
	if err != nil {
		h.writeError(w, r, "create captions from idea", err)
		return
	}
	writeJSON(w, http.StatusOK, GeneratedResponse{Data: captions})
}
