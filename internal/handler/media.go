package handler

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/msomdec/flexbase/internal/domain"
	"github.com/msomdec/flexbase/internal/service"
)

// MediaHandler serves stored uploads.
type MediaHandler struct {
	media *service.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(media *service.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// HandleServe streams the bytes stored under the key.
// GET /uploads/{key...}
func (h *MediaHandler) HandleServe(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := h.media.Open(r.Context(), r.PathValue("key"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("serve media", "key", r.PathValue("key"), "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeImage(w, contentType, data)
}

var defaultAvatar = sync.OnceValue(func() []byte {
	const size = 96
	img := image.NewGray(image.Rect(0, 0, size, size))
	c := size / 2
	for y := range size {
		for x := range size {
			dx, dy := x-c, y-c
			v := uint8(0xe4)
			if dx*dx+dy*dy <= (c-4)*(c-4) {
				v = 0xb0
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		slog.Error("encode default avatar", "error", err)
	}
	return buf.Bytes()
})

// HandleDefaultAvatar serves the placeholder profile picture.
// GET /static/img/default-avatar.png
func HandleDefaultAvatar(w http.ResponseWriter, r *http.Request) {
	writeImage(w, "image/png", defaultAvatar())
}

func writeImage(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
