package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/msomdec/flexbase/internal/domain"
	"github.com/msomdec/flexbase/internal/service"
)

// multipartMemory is how much of a multipart body is held in memory before
// spilling to temp files.
const multipartMemory = 8 << 20

// parseMultipart caps the body at maxFiles images plus form overhead.
func parseMultipart(w http.ResponseWriter, r *http.Request, maxFiles int) error {
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxFiles)*service.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return fmt.Errorf("%w: parse multipart form: %w", domain.ErrUpload, err)
	}
	return nil
}

// formUploads reads every file posted under field. Each file is read up to
// one byte past the size limit so the media service can reject it.
func formUploads(r *http.Request, field string) ([]domain.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	uploads := make([]domain.Upload, 0, len(headers))
	for _, fh := range headers {
		up, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, up)
	}
	return uploads, nil
}

func readUpload(fh *multipart.FileHeader) (domain.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.Upload{}, fmt.Errorf("%w: open %s: %w", domain.ErrUpload, fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, service.MaxUploadSize+1))
	if err != nil {
		return domain.Upload{}, fmt.Errorf("%w: read %s: %w", domain.ErrUpload, fh.Filename, err)
	}
	return domain.Upload{Filename: fh.Filename, Data: data}, nil
}

// writeUploadError answers a multipart failure. Oversized bodies get 413.
func writeUploadError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "Upload is too large.")
		return
	}
	writeError(w, http.StatusBadRequest, "File upload failed.")
}
