package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/flexbase/internal/domain"
	"github.com/msomdec/flexbase/internal/service"
	"github.com/msomdec/flexbase/internal/view"
)

// ProfileHandler renders profile pages and applies profile edits.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// HandleOwnProfile renders the caller's profile.
// GET /profile
func (h *ProfileHandler) HandleOwnProfile(w http.ResponseWriter, r *http.Request, user *domain.User) {
	pv, err := h.profiles.ViewSelf(r.Context(), user)
	if err != nil {
		slog.Error("view own profile", "user_id", user.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	render(w, r, http.StatusOK, view.ProfilePage(user, pv))
}

// HandleUserProfile renders another user's profile. Viewing yourself
// redirects to /profile.
// GET /u/{username}
func (h *ProfileHandler) HandleUserProfile(w http.ResponseWriter, r *http.Request, user *domain.User) {
	username := r.PathValue("username")
	if username == user.Username {
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	pv, err := h.profiles.View(r.Context(), user, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			render(w, r, http.StatusNotFound, view.NotFoundPage(user, "No collector goes by that name."))
			return
		}
		slog.Error("view profile", "username", username, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	render(w, r, http.StatusOK, view.ProfilePage(user, pv))
}

// HandleUpdateProfile sets the bio and optionally a new profile picture.
// POST /profile/update  multipart: bio, profilePicture
func (h *ProfileHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request, user *domain.User) {
	if err := parseMultipart(w, r, 1); err != nil {
		writeUploadError(w, err)
		return
	}

	uploads, err := formUploads(r, "profilePicture")
	if err != nil {
		writeUploadError(w, err)
		return
	}
	var picture *domain.Upload
	if len(uploads) > 0 {
		picture = &uploads[0]
	}

	updated, err := h.profiles.UpdateProfile(r.Context(), user, r.FormValue("bio"), picture)
	if err != nil {
		writeServiceError(w, err, "Error updating profile.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Profile updated!",
		"user":    toUserDTO(updated),
	})
}
