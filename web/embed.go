// Package web carries the embedded HTML templates and static assets.
package web

import "embed"

// Templates embeds the layouts, partials and pages.
//
//go:embed templates/layouts/*.html templates/partials/*.html templates/pages/*.html
var Templates embed.FS

// Static embeds stylesheets and images served under /static/.
//
//go:embed static
var Static embed.FS
