package handler

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/msomdec/flexbase/internal/view"
)

// HandleHome renders the home page.
func HandleHome(w http.ResponseWriter, r *http.Request, viewer Viewer) {
	render(w, r, http.StatusOK, view.HomePage(viewer.User))
}

// render writes a page component with the given status.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render page", "path", r.URL.Path, "error", err)
	}
}
