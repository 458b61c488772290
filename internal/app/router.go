package app

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	enrollmenthttp "github.com/apollo-healthcare/apollo-web/internal/enrollment/http"
	listinghttp "github.com/apollo-healthcare/apollo-web/internal/listing/http"
	"github.com/apollo-healthcare/apollo-web/internal/observability"
	"github.com/apollo-healthcare/apollo-web/internal/platform/httpx"
	"github.com/apollo-healthcare/apollo-web/internal/shared"
	"github.com/apollo-healthcare/apollo-web/internal/view"
	"github.com/apollo-healthcare/apollo-web/web"
)

// LandingRedirectDelay is how long the landing view shows before moving on
// to the listing.
const LandingRedirectDelay = 1500 * time.Millisecond

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	Templates         *view.Engine
	SessionManager    *shared.SessionManager
	CSRFManager       *shared.CSRFManager
	ListingHandler    *listinghttp.Handler
	EnrollmentHandler *enrollmenthttp.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with Apollo defaults.
func NewRouter(params RouterParams) http.Handler {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			httpx.RespondError(w, httpx.ErrNotFound)
			return
		}
		http.NotFound(w, r)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	// Pages carry sessions and CSRF; probes and assets above do not.
	r.Group(func(r chi.Router) {
		for _, mw := range MiddlewareStack(MiddlewareConfig{
			Logger:         logger,
			Config:         params.Config,
			SessionManager: params.SessionManager,
			CSRFManager:    params.CSRFManager,
			Metrics:        params.Metrics,
		}) {
			r.Use(mw)
		}
		r.Use(chimw.Logger)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			data := view.TemplateData{
				Title:       "Apollo",
				CSRFToken:   shared.CSRFTokenFromContext(r.Context()),
				CurrentPath: r.URL.Path,
				Redirect:    &view.Redirect{URL: "/home", After: LandingRedirectDelay},
			}
			if err := params.Templates.Render(w, "pages/landing.html", data); err != nil {
				logger.Error("render landing", slog.Any("error", err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		})

		params.ListingHandler.MountRoutes(r)
		params.EnrollmentHandler.MountRoutes(r)
	})

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
