package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/flexbase/internal/domain"
	"github.com/msomdec/flexbase/internal/service"
	"github.com/msomdec/flexbase/internal/view"
)

// SocialHandler serves follow graph mutations and user search.
type SocialHandler struct {
	social *service.SocialService
}

// NewSocialHandler creates a new SocialHandler.
func NewSocialHandler(social *service.SocialService) *SocialHandler {
	return &SocialHandler{social: social}
}

// HandleFollow makes the caller follow {username}.
// POST /u/{username}/follow
func (h *SocialHandler) HandleFollow(w http.ResponseWriter, r *http.Request, user *domain.User) {
	if err := h.social.Follow(r.Context(), user, r.PathValue("username")); err != nil {
		writeSocialError(w, err, "Cannot follow yourself.")
		return
	}
	writeOK(w, "")
}

// HandleUnfollow removes the caller's edge to {username}.
// POST /u/{username}/unfollow
func (h *SocialHandler) HandleUnfollow(w http.ResponseWriter, r *http.Request, user *domain.User) {
	if err := h.social.Unfollow(r.Context(), user, r.PathValue("username")); err != nil {
		writeSocialError(w, err, "Cannot unfollow yourself.")
		return
	}
	writeOK(w, "")
}

type usernameRequest struct {
	Username string `json:"username"`
}

// HandleRemoveFollower drops a follower from the caller's profile.
// POST /profile/remove-follower  {"username": "..."}
func (h *SocialHandler) HandleRemoveFollower(w http.ResponseWriter, r *http.Request, user *domain.User) {
	var req usernameRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Username required")
		return
	}
	if err := h.social.RemoveFollower(r.Context(), user, req.Username); err != nil {
		writeSocialError(w, err, "Cannot remove yourself.")
		return
	}
	writeOK(w, "")
}

// HandleUnfollowUser unfollows a user from the caller's following list.
// POST /profile/unfollow-user  {"username": "..."}
func (h *SocialHandler) HandleUnfollowUser(w http.ResponseWriter, r *http.Request, user *domain.User) {
	var req usernameRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Username required")
		return
	}
	if err := h.social.UnfollowUser(r.Context(), user, req.Username); err != nil {
		writeSocialError(w, err, "Cannot unfollow yourself.")
		return
	}
	writeOK(w, "")
}

// HandleSearch is the JSON typeahead.
// GET /api/users/search?q=
func (h *SocialHandler) HandleSearch(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	users, err := h.social.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		slog.Error("user search", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"users": []SearchUserDTO{}})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": toSearchUserDTOs(users)})
}

// HandleExplore renders the search page.
// GET /explore
func (h *SocialHandler) HandleExplore(w http.ResponseWriter, r *http.Request, viewer Viewer) {
	render(w, r, http.StatusOK, view.ExplorePage(viewer.User))
}

// HandleExploreSearch answers the explore page's datastar request by
// patching the result list.
// GET /explore/search
func (h *SocialHandler) HandleExploreSearch(w http.ResponseWriter, r *http.Request, _ Viewer) {
	var signals struct {
		Q string `json:"q"`
	}
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	users, err := h.social.Search(r.Context(), signals.Q)
	if err != nil {
		slog.Error("explore search", "error", err)
		users = nil
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(view.SearchResults(users, signals.Q),
		datastar.WithSelectorID(view.SearchResultsID),
		datastar.WithModeInner(),
	); err != nil {
		slog.Error("patch search results", "error", err)
	}
}

func writeSocialError(w http.ResponseWriter, err error, selfMsg string) {
	if errors.Is(err, domain.ErrSelfFollow) {
		writeError(w, http.StatusBadRequest, selfMsg)
		return
	}
	writeServiceError(w, err, "Server error.")
}
