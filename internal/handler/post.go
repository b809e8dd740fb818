package handler

import (
	"net/http"
	"strconv"

	"github.com/msomdec/flexbase/internal/domain"
	"github.com/msomdec/flexbase/internal/service"
	"github.com/msomdec/flexbase/internal/view"
)

// PostHandler serves the post endpoints.
type PostHandler struct {
	posts *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// HandleAddPage renders the new-post form.
// GET /posts/add
func (h *PostHandler) HandleAddPage(w http.ResponseWriter, r *http.Request, user *domain.User) {
	render(w, r, http.StatusOK, view.AddPostPage(user))
}

// HandleAdd creates a post from a multipart form.
// POST /posts/add
func (h *PostHandler) HandleAdd(w http.ResponseWriter, r *http.Request, user *domain.User) {
	if err := parseMultipart(w, r, domain.MaxPostImages+1); err != nil {
		writeUploadError(w, err)
		return
	}

	uploads, err := formUploads(r, "images")
	if err != nil {
		writeUploadError(w, err)
		return
	}

	hashtags := formList(r.MultipartForm.Value, "hashtags")
	if _, err := h.posts.CreatePost(r.Context(), user.ID, r.FormValue("caption"), hashtags, uploads); err != nil {
		writeServiceError(w, err, "Error creating post.")
		return
	}
	writeOK(w, "Post created successfully!")
}

// HandleListByUser returns a user's posts, newest first.
// GET /posts/user/{userID}
func (h *PostHandler) HandleListByUser(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	posts, err := h.posts.ListByOwner(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Error loading posts.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": toPostDTOs(posts)})
}
