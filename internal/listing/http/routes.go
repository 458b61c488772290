package listinghttp

import "github.com/go-chi/chi/v5"

// MountRoutes registers listing endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get(listingPath, h.handleListing)
	r.Get(apiPath, h.handleAPI)
}
