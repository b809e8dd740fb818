package handler

import (
	"net/http"
	"strconv"

	"github.com/msomdec/flexbase/internal/domain"
	"github.com/msomdec/flexbase/internal/service"
	"github.com/msomdec/flexbase/internal/view"
)

// CollectionHandler serves the sneaker collection endpoints.
type CollectionHandler struct {
	collections *service.CollectionService
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(collections *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{collections: collections}
}

// HandleAddPage renders the add-to-collection form.
// GET /collections/add
func (h *CollectionHandler) HandleAddPage(w http.ResponseWriter, r *http.Request, user *domain.User) {
	render(w, r, http.StatusOK, view.AddCollectionPage(user))
}

// HandleAdd creates a collection item from a multipart form.
// POST /collections/add
func (h *CollectionHandler) HandleAdd(w http.ResponseWriter, r *http.Request, user *domain.User) {
	// One spare slot so a sixth image reaches validation instead of the body cap.
	if err := parseMultipart(w, r, domain.MaxCollectionImages+1); err != nil {
		writeUploadError(w, err)
		return
	}

	uploads, err := formUploads(r, "images")
	if err != nil {
		writeUploadError(w, err)
		return
	}

	form := r.MultipartForm.Value
	in := service.AddItemInput{
		Brand:         r.FormValue("brand"),
		BoughtOn:      r.FormValue("boughtOn"),
		BoughtAtPrice: r.FormValue("boughtAtPrice"),
		MarketPrice:   r.FormValue("marketPrice"),
		PrevOwners:    formList(form, "prevOwnerIds"),
		PrevFrom:      formList(form, "prevFrom"),
		PrevTo:        formList(form, "prevTo"),
	}

	if _, err := h.collections.AddItem(r.Context(), user.ID, in, uploads); err != nil {
		writeServiceError(w, err, "Error adding shoe.")
		return
	}
	writeOK(w, "Shoe added to your collection!")
}

// HandleListByUser returns a user's collection.
// GET /collections/user/{userID}
func (h *CollectionHandler) HandleListByUser(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	items, err := h.collections.ListByOwner(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Error loading collection.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"collections": toCollectionItemDTOs(items)})
}

// formList reads a repeated field, accepting both name and name[].
func formList(form map[string][]string, name string) []string {
	if v, ok := form[name]; ok {
		return v
	}
	return form[name+"[]"]
}
