package view

import (
	"github.com/a-h/templ"

	"github.com/msomdec/flexbase/internal/domain"
)

// SearchResultsID is the element patched by the typeahead.
const SearchResultsID = "search-results"

// ExplorePage renders the user search box. Typing sends the q signal to
// /explore/search, which patches #search-results.
func ExplorePage(viewer *domain.User) templ.Component {
	return Layout("Explore", viewer, component(func(h *html) {
		h.raw(`<section class="explore"><h1>Find collectors</h1>`)
		h.raw(`<input type="search" placeholder="Search by username" autocomplete="off" data-bind:q `)
		h.raw(`data-on:input__debounce.250ms="@get('/explore/search')">`)
		h.rawf(`<ul id="%s" class="user-list"></ul></section>`, SearchResultsID)
	}))
}

// SearchResults renders the list items for a typeahead response.
func SearchResults(users []domain.UserSummary, query string) templ.Component {
	return component(func(h *html) {
		if len(users) == 0 {
			if query != "" {
				h.rawf(`<li class="empty">No collectors match “%s”.</li>`, esc(query))
			}
			return
		}
		for _, u := range users {
			userItem(h, u)
		}
	})
}

func userItem(h *html, u domain.UserSummary) {
	h.rawf(`<li><a href="%s"><img src="%s" alt="" class="avatar-sm"> %s</a></li>`,
		esc(profileURL(u.Username)), esc(avatar(u.ProfileImage)), esc(u.Username))
}
