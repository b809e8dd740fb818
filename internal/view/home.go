package view

import (
	"github.com/a-h/templ"

	"github.com/msomdec/flexbase/internal/domain"
)

// HomePage renders the landing page.
func HomePage(viewer *domain.User) templ.Component {
	return Layout("Home", viewer, component(func(h *html) {
		h.raw(`<section class="hero"><h1>FlexBase</h1>`)
		if viewer != nil {
			h.rawf(`<p>Welcome back, <a href="/profile">%s</a>.</p>`, esc(viewer.Username))
			h.raw(`<p><a href="/posts/add">Share a post</a> or <a href="/collections/add">log a new pair</a>.</p>`)
		} else {
			h.raw(`<p>Show off your rotation, track every pair's history, follow other collectors.</p>`)
			h.raw(`<p><a href="/register">Join now</a></p>`)
		}
		h.raw(`</section>`)
	}))
}

// NotFoundPage renders a generic 404 body.
func NotFoundPage(viewer *domain.User, what string) templ.Component {
	return Layout("Not found", viewer, component(func(h *html) {
		h.rawf(`<section><h1>Not found</h1><p>%s</p><p><a href="/">Back home</a></p></section>`, esc(what))
	}))
}
