package handlers

import (
	"context"
	"net/http"
)

// PhoneNumberHeader identifies the caller for saved content. It is trusted
// as sent.
const PhoneNumberHeader = "phone_number"

type SaveGeneratedContentRequest struct {
	Topic string   `json:"topic"`
	Data  []string `json:"data"`
}

type UnsaveContentRequest struct {
	CaptionID string `json:"captionId"`
}

func (h *Handler) SaveGeneratedContent(w http.ResponseWriter, r *http.Request) {
	var req SaveGeneratedContentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	phoneNumber := headerValue(r, PhoneNumberHeader)

	ctx, cancel := context.WithTimeout(r.Context(), h.timeouts.Storage)
	defer cancel()

	if _, err := h.contents.Save(ctx, phoneNumber, req.Topic, req.Data); err != nil {
		h.writeError(w, r, "save generated content", err)
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (h *Handler) GetUserGeneratedContents(w http.ResponseWriter, r *http.Request) {
	phoneNumber := r.URL.Query().Get(PhoneNumberHeader)

	ctx, cancel := context.WithTimeout(r.Context(), h.timeouts.Storage)
	defer cancel()

	contents, err := h.contents.ListForUser(ctx, phoneNumber)
	if err != nil {
		h.writeError(w, r, "get user generated contents", err)
		return
	}
	writeJSON(w, http.StatusOK, contents)
}

func (h *Handler) UnsaveContent(w http.ResponseWriter, r *http.Request) {
	var req UnsaveContentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeouts.Storage)
	defer cancel()

	if err := h.contents.Remove(ctx, req.CaptionID); err != nil {
		h.writeError(w, r, "unsave content", err)
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// headerValue falls back to the raw key for headers set without
// canonicalization, as some test clients and proxies do.
func headerValue(r *http.Request, name string) string {
	if v := r.Header.Get(name); v != "" {
		return v
	}
	if vs := r.Header[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}
