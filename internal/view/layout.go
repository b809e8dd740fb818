package view

import (
	"github.com/a-h/templ"

	"github.com/msomdec/flexbase/internal/domain"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// clientScript posts JSON or multipart bodies to the JSON endpoints and
// reports the {success,message} answer.
const clientScript = `
window.flexbase = {
  async send(url, body) {
    const opts = { method: 'POST', credentials: 'same-origin' };
    if (body instanceof FormData) { opts.body = body; }
    else if (body) { opts.body = JSON.stringify(body); opts.headers = { 'Content-Type': 'application/json' }; }
    const res = await fetch(url, opts);
    let data = {};
    try { data = await res.json(); } catch (e) {}
    if (res.status === 401) { window.location = '/login'; return data; }
    if (!res.ok || data.success === false) { alert(data.message || 'Something went wrong.'); }
    return data;
  },
  async act(url, body) {
    const data = await this.send(url, body);
    if (data.success) { window.location.reload(); }
  },
  async submit(form) {
    const data = await this.send(form.action, new FormData(form));
    if (data.success) {
      if (data.message) { alert(data.message); }
      window.location = '/profile';
    }
  }
};
`

// Layout wraps body in the shared document shell and navigation bar.
func Layout(title string, viewer *domain.User, body templ.Component) templ.Component {
	return component(func(h *html) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.rawf(`<title>%s · FlexBase</title>`, esc(title))
		h.rawf(`<script type="module" src="%s"></script>`, datastarScript)
		h.rawf(`<script>%s</script>`, clientScript)
		h.raw(`</head><body><header><nav><a href="/" class="brand">FlexBase</a> <a href="/explore">Explore</a>`)
		if viewer != nil {
			h.raw(` <a href="/posts/add">New post</a> <a href="/collections/add">Add to collection</a>`)
			h.rawf(` <a href="/profile">@%s</a>`, esc(viewer.Username))
			h.raw(` <form method="post" action="/logout" class="inline"><button type="submit">Log out</button></form>`)
		} else {
			h.raw(` <a href="/login">Log in</a> <a href="/register">Sign up</a>`)
		}
		h.raw(`</nav></header><main>`)
		h.component(body)
		h.raw(`</main></body></html>`)
	})
}

func errorBanner(h *html, msg string) {
	if msg != "" {
		h.rawf(`<p class="error" role="alert">%s</p>`, esc(msg))
	}
}
