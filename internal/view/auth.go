package view

import "github.com/a-h/templ"

// LoginPage renders the login form with an optional error message.
func LoginPage(errMsg string) templ.Component {
	return Layout("Log in", nil, component(func(h *html) {
		h.raw(`<section class="auth"><h1>Log in</h1>`)
		errorBanner(h, errMsg)
		h.raw(`<form method="post" action="/login">`)
		h.raw(`<label>Email <input type="email" name="email" required autocomplete="email"></label>`)
		h.raw(`<label>Password <input type="password" name="password" required autocomplete="current-password"></label>`)
		h.raw(`<button type="submit">Log in</button></form>`)
		h.raw(`<p>New here? <a href="/register">Create an account</a></p></section>`)
	}))
}

// RegisterPage renders the sign-up form, keeping the entered username and email.
func RegisterPage(errMsg, username, email string) templ.Component {
	return Layout("Sign up", nil, component(func(h *html) {
		h.raw(`<section class="auth"><h1>Sign up</h1>`)
		errorBanner(h, errMsg)
		h.raw(`<form method="post" action="/register">`)
		h.rawf(`<label>Username <input type="text" name="username" value="%s" required autocomplete="username"></label>`, esc(username))
		h.rawf(`<label>Email <input type="email" name="email" value="%s" required autocomplete="email"></label>`, esc(email))
		h.raw(`<label>Password <input type="password" name="password" required minlength="6" autocomplete="new-password"></label>`)
		h.raw(`<button type="submit">Sign up</button></form>`)
		h.raw(`<p>Already a member? <a href="/login">Log in</a></p></section>`)
	}))
}
