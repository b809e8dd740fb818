package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/msomdec/flexbase/internal/domain"
	"github.com/msomdec/flexbase/internal/service"
)

// ProfilePage renders a user's profile. Owners get edit and follower
// management controls; other viewers get a follow toggle.
func ProfilePage(viewer *domain.User, pv *service.ProfileView) templ.Component {
	u := pv.User
	return Layout("@"+u.Username, viewer, component(func(h *html) {
		h.raw(`<section class="profile-header">`)
		h.rawf(`<img src="%s" alt="%s" class="avatar">`, esc(u.Avatar()), esc(u.Username))
		h.rawf(`<h1>%s</h1>`, esc(u.Username))
		if u.Bio != "" {
			h.rawf(`<p class="bio">%s</p>`, esc(u.Bio))
		}
		h.rawf(`<p class="stats"><span>%d posts</span> <span>%d followers</span> <span>%d following</span> <span>%d pairs</span></p>`,
			len(pv.Posts), u.FollowersCount, u.FollowingCount, len(pv.Collections))

		if !pv.ViewingSelf {
			action, label := "follow", "Follow"
			if pv.IsFollowing {
				action, label = "unfollow", "Unfollow"
			}
			h.rawf(`<button type="button" onclick="flexbase.act('%s/%s')">%s</button>`,
				esc(profileURL(u.Username)), action, label)
		}
		h.raw(`</section>`)

		if pv.ViewingSelf {
			editForm(h, u)
		}

		h.raw(`<section class="connections"><h2>Followers</h2><ul class="user-list">`)
		for _, f := range pv.Followers {
			userItem(h, f)
			if pv.ViewingSelf {
				h.rawf(`<button type="button" onclick="flexbase.act('/profile/remove-follower', {username: '%s'})">Remove</button>`, esc(f.Username))
			}
		}
		h.raw(`</ul><h2>Following</h2><ul class="user-list">`)
		for _, f := range pv.Following {
			userItem(h, f)
			if pv.ViewingSelf {
				h.rawf(`<button type="button" onclick="flexbase.act('/profile/unfollow-user', {username: '%s'})">Unfollow</button>`, esc(f.Username))
			}
		}
		h.raw(`</ul></section>`)

		h.raw(`<section class="posts"><h2>Posts</h2><div class="grid">`)
		for _, p := range pv.Posts {
			postCard(h, p)
		}
		h.raw(`</div></section>`)

		h.raw(`<section class="collection"><h2>Collection</h2><div class="grid">`)
		for _, c := range pv.Collections {
			collectionCard(h, c)
		}
		h.raw(`</div></section>`)
	}))
}

func editForm(h *html, u *domain.User) {
	h.raw(`<details class="edit-profile"><summary>Edit profile</summary>`)
	h.raw(`<form action="/profile/update" method="post" enctype="multipart/form-data" onsubmit="flexbase.submit(this); return false">`)
	h.rawf(`<label>Bio <textarea name="bio" maxlength="%d">%s</textarea></label>`, service.MaxBioLength, esc(u.Bio))
	h.raw(`<label>Profile picture <input type="file" name="profilePicture" accept="image/*"></label>`)
	h.raw(`<button type="submit">Save</button></form></details>`)
}

func postCard(h *html, p domain.Post) {
	h.rawf(`<article class="post" id="post-%d">`, p.ID)
	for _, img := range p.Images {
		h.rawf(`<img src="%s" alt="" loading="lazy">`, esc(img))
	}
	if p.Caption != "" {
		h.rawf(`<p>%s</p>`, esc(p.Caption))
	}
	if len(p.Hashtags) > 0 {
		tags := make([]string, len(p.Hashtags))
		for i, t := range p.Hashtags {
			tags[i] = "#" + t
		}
		h.rawf(`<p class="tags">%s</p>`, esc(strings.Join(tags, " ")))
	}
	h.rawf(`<time datetime="%s">%s</time></article>`,
		p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"), p.CreatedAt.Format("Jan 2, 2006"))
}

func collectionCard(h *html, c domain.CollectionItem) {
	h.rawf(`<article class="pair" id="pair-%d">`, c.ID)
	for _, img := range c.Images {
		h.rawf(`<img src="%s" alt="%s" loading="lazy">`, esc(img), esc(c.Brand))
	}
	h.rawf(`<h3>%s</h3>`, esc(c.Brand))
	h.rawf(`<p>Bought %s for %s · worth %s</p>`,
		c.BoughtOn.Format(domain.DateLayout), money(c.BoughtAtPrice), money(c.MarketPrice))
	if len(c.PreviousOwners) > 0 {
		h.raw(`<ol class="provenance">`)
		for _, o := range c.PreviousOwners {
			h.rawf(`<li>%s <span>%s → %s</span></li>`,
				esc(o.User), o.From.Format(domain.DateLayout), o.To.Format(domain.DateLayout))
		}
		h.raw(`</ol>`)
	}
	h.raw(`</article>`)
}

func money(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	return fmt.Sprintf("$%s", strings.TrimSuffix(s, ".00"))
}
