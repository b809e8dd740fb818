package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/msomdec/flexbase/internal/domain"
	"github.com/msomdec/flexbase/internal/service"
	"github.com/msomdec/flexbase/internal/view"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *Sessions
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, sessions *Sessions) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

// HandleLoginPage renders the login form with an optional ?error= banner.
// GET /login
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.LoginPage(r.URL.Query().Get("error")))
}

// HandleRegisterPage renders the sign-up form.
// GET /register
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.RegisterPage("", "", ""))
}

// HandleLogin verifies the form credentials and starts a session.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		redirectLogin(w, r, "Email and password are required")
		return
	}

	token, user, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			redirectLogin(w, r, "Invalid email or password")
			return
		}
		slog.Error("login user", "error", err)
		redirectLogin(w, r, "Server error. Please try again later.")
		return
	}

	h.sessions.SetCookie(w, token)
	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleRegister creates an account and signs the new user in.
// POST /register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := h.auth.Register(r.Context(), username, email, password)
	if err != nil {
		status, msg := http.StatusInternalServerError, "Server error. Please try again later."
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			status, msg = http.StatusUnprocessableEntity, userMessage(err)
		case errors.Is(err, domain.ErrDuplicateEmail):
			status, msg = http.StatusConflict, "Email already in use"
		case errors.Is(err, domain.ErrDuplicateUsername):
			status, msg = http.StatusConflict, "Username already taken"
		default:
			slog.Error("register user", "error", err)
		}
		render(w, r, status, view.RegisterPage(msg, username, email))
		return
	}

	token, err := h.auth.Issue(user.ID)
	if err != nil {
		slog.Error("issue token after register", "error", err)
		redirectLogin(w, r, "Account created. Please login.")
		return
	}

	h.sessions.SetCookie(w, token)
	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the session cookie.
// POST /logout, GET /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleCurrentUser returns the signed-in user.
// GET /api/user
func (h *AuthHandler) HandleCurrentUser(w http.ResponseWriter, r *http.Request, user *domain.User) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    toUserDTO(user),
	})
}

func redirectLogin(w http.ResponseWriter, r *http.Request, reason string) {
	http.Redirect(w, r, "/login?error="+url.QueryEscape(reason), http.StatusSeeOther)
}
