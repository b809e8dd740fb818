package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/msomdec/flexbase/internal/domain"
	"github.com/msomdec/flexbase/internal/service"
)

// CookieName carries the session token.
const CookieName = "token"

// IdentityHandler receives the authenticated user explicitly.
type IdentityHandler func(w http.ResponseWriter, r *http.Request, user *domain.User)

// Viewer describes who is looking at a public page.
type Viewer struct {
	User            *domain.User
	IsAuthenticated bool
}

// ViewerHandler receives the optional identity of the caller.
type ViewerHandler func(w http.ResponseWriter, r *http.Request, viewer Viewer)

// Sessions issues and clears the session cookie and guards routes with it.
type Sessions struct {
	auth   *service.AuthService
	secure bool
}

// NewSessions creates a Sessions gate. secure controls the cookie's Secure
// attribute and should only be false for local development over plain HTTP.
func NewSessions(auth *service.AuthService, secure bool) *Sessions {
	return &Sessions{auth: auth, secure: secure}
}

// SetCookie stores token in the session cookie.
func (s *Sessions) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(s.auth.TokenTTL().Seconds()),
	})
}

// ClearCookie expires the session cookie.
func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}

// RequireAuth protects a page. Unauthenticated callers are sent to the
// login page with a reason, and any stale cookie is cleared.
func (s *Sessions) RequireAuth(next IdentityHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.resolve(r)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthorized) {
				slog.Error("authenticate request", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			s.ClearCookie(w)
			http.Redirect(w, r, "/login?error="+url.QueryEscape(failureReason(err)), http.StatusSeeOther)
			return
		}
		next(w, r, user)
	})
}

// RequireAPIAuth protects a JSON endpoint and answers 401 on failure.
func (s *Sessions) RequireAPIAuth(next IdentityHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.resolve(r)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthorized) {
				slog.Error("authenticate request", "error", err)
				writeError(w, http.StatusInternalServerError, "Server error.")
				return
			}
			s.ClearCookie(w)
			writeError(w, http.StatusUnauthorized, failureReason(err))
			return
		}
		next(w, r, user)
	})
}

// OptionalAuth never rejects. A token that no longer verifies is cleared
// and the request proceeds anonymously.
func (s *Sessions) OptionalAuth(next ViewerHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.resolve(r)
		switch {
		case err == nil:
			next(w, r, Viewer{User: user, IsAuthenticated: true})
			return
		case errors.Is(err, errNoToken):
		case errors.Is(err, domain.ErrUnauthorized):
			s.ClearCookie(w)
		default:
			slog.Warn("optional authentication", "error", err)
		}
		next(w, r, Viewer{})
	})
}

var errNoToken = fmt.Errorf("%w: no session token", domain.ErrUnauthorized)

func (s *Sessions) resolve(r *http.Request) (*domain.User, error) {
	token := tokenFromRequest(r)
	if token == "" {
		return nil, errNoToken
	}
	return s.auth.Authenticate(r.Context(), token)
}

// tokenFromRequest reads the session cookie, falling back to a bearer
// Authorization header.
func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, errNoToken):
		return "Access denied. Please login."
	case errors.Is(err, domain.ErrTokenExpired):
		return "Session expired. Please login again."
	case errors.Is(err, domain.ErrUserGone):
		return "User not found. Please login again."
	case errors.Is(err, domain.ErrTokenMalformed):
		return "Invalid session. Please login again."
	}
	return "Authentication failed. Please login again."
}

// SecurityHeaders sets conservative browser security headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// RequestLogger logs method, path, status and duration of each request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// RateLimit rejects callers whose IP has exhausted its bucket.
func RateLimit(limiter *service.TokenBucket, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Too many attempts. Please try again later.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
