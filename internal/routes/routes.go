package routes

import (
	"net/http"

	"github.com/AnshRaj112/captionly-backend/internal/handlers"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers the API on r. issueLimiter, when non-nil, guards
// access code issuance only.
func SetupRoutes(r chi.Router, h *handlers.Handler, issueLimiter func(http.Handler) http.Handler) {
	// Health check (no rate limit)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Access code routes
	if issueLimiter != nil {
		r.With(issueLimiter).Post("/createNewAccessCode", h.CreateNewAccessCode)
	} else {
		r.Post("/createNewAccessCode", h.CreateNewAccessCode)
	}
	r.Post("/validateAccessCode", h.ValidateAccessCode)

	// Generation routes
	r.Post("/generatePostCaptions", h.GeneratePostCaptions)
	r.Post("/getPostIdeas", h.GetPostIdeas)
	r.Post("/createCaptionsFromIdeas", h.CreateCaptionsFromIdeas)

	// Saved content routes
	r.Post("/saveGeneratedContent", h.SaveGeneratedContent)
	r.Get("/getUserGeneratedContents", h.GetUserGeneratedContents)
	r.Post("/unsaveContent", h.UnsaveContent)
}
