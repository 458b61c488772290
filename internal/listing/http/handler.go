package listinghttp

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/apollo-healthcare/apollo-web/internal/directory"
	"github.com/apollo-healthcare/apollo-web/internal/listing"
	"github.com/apollo-healthcare/apollo-web/internal/listing/ui"
	"github.com/apollo-healthcare/apollo-web/internal/platform/httpx"
	"github.com/apollo-healthcare/apollo-web/internal/shared"
	"github.com/apollo-healthcare/apollo-web/internal/view"
)

const (
	listingPath = "/home"
	apiPath     = "/api/listing"
	pageTitle   = "Apollo - Find Doctors"
)

// Listings resolves the listing machine of a visitor.
type Listings interface {
	Get(key string) *listing.Machine
	Peek(key string) (*listing.Machine, bool)
	Detached() *listing.Machine
}

// Handler serves the doctor listing.
type Handler struct {
	logger    *slog.Logger
	listings  Listings
	templates *view.Engine
}

// NewHandler constructs the listing handler.
func NewHandler(logger *slog.Logger, listings Listings, templates *view.Engine) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, listings: listings, templates: templates}
}

// requestedQuery reads the view from the URL, which fully describes it. A
// missing or invalid page means page 1.
func requestedQuery(r *http.Request) (listing.Query, ui.ViewState) {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return listing.Query{Filters: directory.FilterStateFromQuery(q), Page: page}, ui.ViewStateFromQuery(q)
}

// machineFor returns the listing machine of the request's session. A session
// created by this request gets an untracked machine.
func (h *Handler) machineFor(r *http.Request) (*listing.Machine, string, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || sess.ID == "" {
		return nil, "", false
	}
	if sess.IsNew() {
		return h.listings.Detached(), sess.ID, true
	}
	return h.listings.Get(sess.ID), sess.ID, true
}

func (h *Handler) navigate(ctx context.Context, m *listing.Machine, key string, q listing.Query) listing.Snapshot {
	snap, applied := m.Navigate(ctx, q)
	if !applied {
		h.logger.Debug("listing superseded by newer request", slog.String("session", key))
	}
	return snap
}

func searchFields(filters directory.FilterState, vs ui.ViewState) []view.HiddenField {
	pairs := ui.SearchCarryPairs(filters, vs)
	fields := make([]view.HiddenField, 0, len(pairs))
	for _, p := range pairs {
		fields = append(fields, view.HiddenField{Name: p[0], Value: p[1]})
	}
	return fields
}

func (h *Handler) handleListing(w http.ResponseWriter, r *http.Request) {
	m, key, ok := h.machineFor(r)
	if !ok {
		h.logger.Error("session missing for listing")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	q, vs := requestedQuery(r)
	snap := h.navigate(r.Context(), m, key, q)

	viewData := view.TemplateData{
		Title:        pageTitle,
		CurrentPath:  r.URL.Path,
		Search:       q.Filters.Search(),
		SearchFields: searchFields(q.Filters, vs),
		Data:         ui.BuildListingPage(listingPath, snap, vs),
	}
	if err := h.templates.Render(w, "pages/home.html", viewData); err != nil {
		h.logger.Error("render listing", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// listingResponse is the JSON form of a listing snapshot.
type listingResponse struct {
	Status      listing.Status     `json:"status"`
	Filters     map[string]string  `json:"filters"`
	Search      string             `json:"search,omitempty"`
	Data        []directory.Doctor `json:"data"`
	Placeholder []directory.Doctor `json:"placeholder,omitempty"`
	Meta        listing.Pagination `json:"meta"`
	Window      []int              `json:"window"`
	Error       string             `json:"error,omitempty"`
}

func newListingResponse(snap listing.Snapshot) listingResponse {
	data := snap.Doctors
	if data == nil {
		data = []directory.Doctor{}
	}
	return listingResponse{
		Status:      snap.Status,
		Filters:     snap.Query.Filters.Map(),
		Search:      snap.Query.Filters.Search(),
		Data:        data,
		Placeholder: snap.Placeholder,
		Meta:        snap.Pagination,
		Window:      snap.Window(),
		Error:       snap.Err,
	}
}

// handleAPI returns the visitor's listing as JSON. Without a query string it
// reports the current state and only fetches when no listing exists yet.
func (h *Handler) handleAPI(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if r.URL.RawQuery == "" && sess != nil && !sess.IsNew() {
		if current, found := h.listings.Peek(sess.ID); found {
			httpx.JSON(w, http.StatusOK, newListingResponse(current.State()))
			return
		}
	}
	m, key, ok := h.machineFor(r)
	if !ok {
		h.logger.Error("session missing for listing api")
		httpx.RespondError(w, shared.ErrSessionMissing)
		return
	}
	q, _ := requestedQuery(r)
	httpx.JSON(w, http.StatusOK, newListingResponse(h.navigate(r.Context(), m, key, q)))
}

// HandleListingForTest exposes the GET /home handler for tests.
func (h *Handler) HandleListingForTest(w http.ResponseWriter, r *http.Request) {
	h.handleListing(w, r)
}

// HandleAPIForTest exposes the JSON handler for tests.
func (h *Handler) HandleAPIForTest(w http.ResponseWriter, r *http.Request) {
	h.handleAPI(w, r)
}
