package view

import (
	"time"

	"github.com/a-h/templ"

	"github.com/msomdec/flexbase/internal/domain"
)

// ownerRowScript appends another previous-owner row whose from date starts
// at the last row's to date.
const ownerRowScript = `
function addOwnerRow() {
  const list = document.getElementById('prev-owners');
  const last = list.querySelector('.owner-row:last-child input[name=prevTo]');
  const row = document.createElement('div');
  row.className = 'owner-row';
  const today = new Date().toISOString().slice(0, 10);
  const min = last && last.value ? last.value : '';
  row.innerHTML =
    '<input type="text" name="prevOwnerIds" placeholder="Username or name" required>' +
    '<input type="date" name="prevFrom" required max="' + today + '"' + (min ? ' min="' + min + '" value="' + min + '"' : '') + '>' +
    '<input type="date" name="prevTo" required max="' + today + '"' + (min ? ' min="' + min + '"' : '') + '>' +
    '<button type="button" onclick="this.parentElement.remove()">Remove</button>';
  list.appendChild(row);
}
`

// AddCollectionPage renders the new collection item form.
func AddCollectionPage(viewer *domain.User) templ.Component {
	today := time.Now().Format(domain.DateLayout)
	return Layout("Add to collection", viewer, component(func(h *html) {
		h.rawf(`<script>%s</script>`, ownerRowScript)
		h.raw(`<section><h1>Add a pair</h1>`)
		h.raw(`<form action="/collections/add" method="post" enctype="multipart/form-data" onsubmit="flexbase.submit(this); return false">`)
		h.rawf(`<label>Photos (1-%d) <input type="file" name="images" accept="image/*" multiple required></label>`, domain.MaxCollectionImages)
		h.raw(`<label>Brand <input type="text" name="brand" required></label>`)
		h.rawf(`<label>Bought on <input type="date" name="boughtOn" required max="%s"></label>`, today)
		h.raw(`<label>Bought at <input type="number" name="boughtAtPrice" min="0.01" step="0.01" required></label>`)
		h.raw(`<label>Market price <input type="number" name="marketPrice" min="0.01" step="0.01" required></label>`)
		h.raw(`<fieldset><legend>Previous owners</legend><div id="prev-owners"></div>`)
		h.raw(`<button type="button" onclick="addOwnerRow()">Add previous owner</button></fieldset>`)
		h.raw(`<button type="submit">Save</button></form></section>`)
	}))
}

// AddPostPage renders the new post form.
func AddPostPage(viewer *domain.User) templ.Component {
	return Layout("New post", viewer, component(func(h *html) {
		h.raw(`<section><h1>New post</h1>`)
		h.raw(`<form action="/posts/add" method="post" enctype="multipart/form-data" onsubmit="flexbase.submit(this); return false">`)
		h.rawf(`<label>Photos (1-%d) <input type="file" name="images" accept="image/*" multiple required></label>`, domain.MaxPostImages)
		h.rawf(`<label>Caption <textarea name="caption" maxlength="%d"></textarea></label>`, domain.MaxCaptionLength)
		h.raw(`<label>Hashtags <input type="text" name="hashtags" placeholder="#jordan #retro"></label>`)
		h.raw(`<button type="submit">Post</button></form></section>`)
	}))
}
