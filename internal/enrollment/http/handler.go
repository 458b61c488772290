package enrollmenthttp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/apollo-healthcare/apollo-web/internal/directory"
	"github.com/apollo-healthcare/apollo-web/internal/enrollment"
	"github.com/apollo-healthcare/apollo-web/internal/listing/ui"
	"github.com/apollo-healthcare/apollo-web/internal/shared"
	"github.com/apollo-healthcare/apollo-web/internal/view"
)

const (
	formPath    = "/addmydoctor"
	listingPath = "/home"
	pageTitle   = "Add New Doctor"
	// SuccessMessage is flashed after the API accepts a submission.
	SuccessMessage = "Doctor added successfully! Redirecting..."
	// SuccessRedirectDelay is how long the success view stays before
	// navigating back to the listing.
	SuccessRedirectDelay = 2000 * time.Millisecond
)

// EnrollmentService is the submission contract used by the handler.
type EnrollmentService interface {
	Submit(ctx context.Context, form enrollment.Form) (json.RawMessage, error)
}

// Handler serves the add-doctor form.
type Handler struct {
	logger    *slog.Logger
	service   EnrollmentService
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler constructs the add-doctor handler.
func NewHandler(logger *slog.Logger, service EnrollmentService, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf}
}

type genderOption struct {
	Value string
	Label string
}

type formPageData struct {
	Form          enrollment.Form
	Error         string
	Genders       []genderOption
	Specialties   []string
	DefaultRating float64
}

func newFormPageData(form enrollment.Form, errMsg string) formPageData {
	genders := make([]genderOption, 0, len(directory.Genders))
	for _, g := range directory.Genders {
		genders = append(genders, genderOption{Value: g, Label: ui.TitleCase(g)})
	}
	return formPageData{
		Form:          form,
		Error:         errMsg,
		Genders:       genders,
		Specialties:   directory.Specialties,
		DefaultRating: enrollment.DefaultRating,
	}
}

func (h *Handler) showForm(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := h.viewData(r, sess, newFormPageData(enrollment.Form{}, ""))
	viewData.Flash = flash
	if flash != nil && flash.Kind == shared.FlashSuccess {
		viewData.Redirect = &view.Redirect{URL: listingPath, After: SuccessRedirectDelay}
	}
	if err := h.templates.Render(w, "pages/addmydoctor.html", viewData); err != nil {
		h.logger.Error("render add doctor", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	form := enrollment.FormFromValues(r.PostFormValue)

	_, err := h.service.Submit(r.Context(), form)
	if err == nil {
		if sess == nil {
			h.logger.Error("session missing after add doctor")
		} else {
			sess.AddFlash(shared.FlashMessage{Kind: shared.FlashSuccess, Message: SuccessMessage})
		}
		http.Redirect(w, r, formPath, http.StatusSeeOther)
		return
	}

	status := http.StatusInternalServerError
	var (
		verr *enrollment.ValidationError
		serr *directory.SubmitError
	)
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
	case errors.As(err, &serr):
		status = http.StatusBadGateway
	default:
		h.logger.Error("add doctor", slog.Any("error", err))
	}

	viewData := h.viewData(r, sess, newFormPageData(form, err.Error()))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.Render(w, "pages/addmydoctor.html", viewData); err != nil {
		h.logger.Error("render add doctor failure", slog.Any("error", err))
	}
}

func (h *Handler) viewData(r *http.Request, sess *shared.Session, data formPageData) view.TemplateData {
	token := shared.CSRFTokenFromContext(r.Context())
	if token == "" && h.csrf != nil && sess != nil {
		var err error
		if token, err = h.csrf.EnsureToken(sess); err != nil {
			h.logger.Warn("csrf token", slog.Any("error", err))
		}
	}
	return view.TemplateData{
		Title:       pageTitle,
		CSRFToken:   token,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
}

// ShowFormForTest exposes the GET handler for tests.
func (h *Handler) ShowFormForTest(w http.ResponseWriter, r *http.Request) {
	h.showForm(w, r)
}

// HandleSubmitForTest exposes the POST handler for tests.
func (h *Handler) HandleSubmitForTest(w http.ResponseWriter, r *http.Request) {
	h.handleSubmit(w, r)
}
