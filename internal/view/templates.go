package view

import (
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/apollo-healthcare/apollo-web/internal/shared"
	"github.com/apollo-healthcare/apollo-web/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// Redirect schedules navigation from the view it is rendered into. The page
// script runs the timer with millisecond precision and cancels it when the
// view goes away; a meta refresh is the fallback without scripting.
type Redirect struct {
	URL   string
	After time.Duration
}

// Milliseconds returns the delay used by the page script.
func (r *Redirect) Milliseconds() int64 {
	if r == nil {
		return 0
	}
	return r.After.Milliseconds()
}

// Seconds returns the delay in whole seconds, rounded up, as used by the
// refresh directive. Browsers drop any fraction from that value.
func (r *Redirect) Seconds() string {
	if r == nil {
		return "0"
	}
	return strconv.FormatInt(int64(math.Ceil(r.After.Seconds())), 10)
}

// Content returns the refresh directive, for example "2;url=/home".
func (r *Redirect) Content() string {
	if r == nil {
		return ""
	}
	return r.Seconds() + ";url=" + r.URL
}

// HiddenField is a name/value pair rendered as a hidden form input.
type HiddenField struct {
	Name  string
	Value string
}

// TemplateData contains values shared across templates. SearchFields are
// submitted with the header search so it keeps the active filters.
type TemplateData struct {
	Title        string
	CSRFToken    string
	Flash        *shared.FlashMessage
	CurrentPath  string
	Search       string
	SearchFields []HiddenField
	Redirect     *Redirect
	Data         any
}

// NewEngine parses templates at build-time.
func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"year": func() int {
			return time.Now().Year()
		},
		"navActive": func(current, path string) bool {
			return current == path
		},
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}
