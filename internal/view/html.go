// Package view renders FlexBase pages and fragments as templ components.
package view

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// html accumulates output and keeps the first write error.
type html struct {
	w   io.Writer
	ctx context.Context
	err error
}

func (h *html) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

// text writes s escaped for element content or a quoted attribute.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// rawf formats without escaping; callers escape user data.
func (h *html) rawf(format string, args ...any) {
	if h.err == nil {
		_, h.err = fmt.Fprintf(h.w, format, args...)
	}
}

func (h *html) component(c templ.Component) {
	if h.err == nil && c != nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

// component builds a templ.Component from a render function over html.
func component(fn func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w, ctx: ctx}
		fn(h)
		return h.err
	})
}

func esc(s string) string {
	return templ.EscapeString(s)
}

func profileURL(username string) string {
	return "/u/" + url.PathEscape(username)
}

func avatar(ref string) string {
	if ref == "" {
		return "/static/img/default-avatar.png"
	}
	return ref
}
