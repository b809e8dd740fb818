package handler

import (
	"net/http"

	"github.com/msomdec/flexbase/internal/service"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Auth        *service.AuthService
	Social      *service.SocialService
	Profiles    *service.ProfileService
	Collections *service.CollectionService
	Posts       *service.PostService
	Media       *service.MediaService
	// AuthLimiter throttles login and registration per client IP.
	AuthLimiter *service.TokenBucket
	// CookieSecure sets the Secure attribute on the session cookie.
	CookieSecure bool
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, svc Services) {
	sessions := NewSessions(svc.Auth, svc.CookieSecure)
	authH := NewAuthHandler(svc.Auth, sessions)
	socialH := NewSocialHandler(svc.Social)
	profileH := NewProfileHandler(svc.Profiles)
	collectionH := NewCollectionHandler(svc.Collections)
	postH := NewPostHandler(svc.Posts)
	mediaH := NewMediaHandler(svc.Media)

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /static/img/default-avatar.png", HandleDefaultAvatar)
	mux.HandleFunc("GET /uploads/{key...}", mediaH.HandleServe)

	// Auth pages.
	mux.HandleFunc("GET /login", authH.HandleLoginPage)
	mux.HandleFunc("GET /register", authH.HandleRegisterPage)
	mux.Handle("POST /login", RateLimit(svc.AuthLimiter, http.HandlerFunc(authH.HandleLogin)))
	mux.Handle("POST /register", RateLimit(svc.AuthLimiter, http.HandlerFunc(authH.HandleRegister)))
	mux.HandleFunc("POST /logout", authH.HandleLogout)
	mux.HandleFunc("GET /logout", authH.HandleLogout)

	// Public pages.
	mux.Handle("GET /{$}", sessions.OptionalAuth(HandleHome))
	mux.Handle("GET /explore", sessions.OptionalAuth(socialH.HandleExplore))
	mux.Handle("GET /explore/search", sessions.OptionalAuth(socialH.HandleExploreSearch))

	// Authenticated pages.
	mux.Handle("GET /profile", sessions.RequireAuth(profileH.HandleOwnProfile))
	mux.Handle("GET /u/{username}", sessions.RequireAuth(profileH.HandleUserProfile))
	mux.Handle("GET /collections/add", sessions.RequireAuth(collectionH.HandleAddPage))
	mux.Handle("GET /posts/add", sessions.RequireAuth(postH.HandleAddPage))

	// JSON API.
	mux.Handle("GET /api/user", sessions.RequireAPIAuth(authH.HandleCurrentUser))
	mux.Handle("GET /api/users/search", sessions.RequireAPIAuth(socialH.HandleSearch))
	mux.Handle("POST /u/{username}/follow", sessions.RequireAPIAuth(socialH.HandleFollow))
	mux.Handle("POST /u/{username}/unfollow", sessions.RequireAPIAuth(socialH.HandleUnfollow))
	mux.Handle("POST /profile/remove-follower", sessions.RequireAPIAuth(socialH.HandleRemoveFollower))
	mux.Handle("POST /profile/unfollow-user", sessions.RequireAPIAuth(socialH.HandleUnfollowUser))
	mux.Handle("POST /profile/update", sessions.RequireAPIAuth(profileH.HandleUpdateProfile))
	mux.Handle("POST /collections/add", sessions.RequireAPIAuth(collectionH.HandleAdd))
	mux.Handle("GET /collections/user/{userID}", sessions.RequireAPIAuth(collectionH.HandleListByUser))
	mux.Handle("POST /posts/add", sessions.RequireAPIAuth(postH.HandleAdd))
	mux.Handle("GET /posts/user/{userID}", sessions.RequireAPIAuth(postH.HandleListByUser))
}

// Wrap applies the middleware every response passes through.
func Wrap(mux http.Handler) http.Handler {
	return RequestLogger(SecurityHeaders(mux))
}
