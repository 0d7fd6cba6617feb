package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"fsanano/catalog-api/internal/common"
	"fsanano/catalog-api/internal/logging"
	"fsanano/catalog-api/internal/service/images"

	"github.com/go-chi/chi/v5"
)

type UploadHandler struct {
	intake   *images.Intake
	maxBytes int64
	log      logging.Logger
}

func NewUploadHandler(intake *images.Intake, maxBytes int64, log logging.Logger) *UploadHandler {
	return &UploadHandler{intake: intake, maxBytes: maxBytes, log: log.With("component", "upload")}
}

type UploadResponse struct {
	Success  int    `json:"success"`
	ImageURL string `json:"image_url,omitempty"`
	Errors   string `json:"errors,omitempty"`
}

// Upload stores the single file sent under the "product" multipart field.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile(images.FieldName)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, UploadResponse{Errors: "file too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, UploadResponse{Errors: "expected a file in the \"product\" field"})
		return
	}
	defer file.Close()

	up, err := h.intake.Receive(r.Context(), images.FieldName, header.Filename, file)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.Info(r.Context(), "image stored", "filename", up.Filename, "size", header.Size)

	writeJSON(w, http.StatusOK, UploadResponse{Success: 1, ImageURL: up.URL})
}

func (h *UploadHandler) ServeImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	rc, err := h.intake.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		writeError(w, r, h.log, err)
		return
	}
	defer rc.Close()

	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, rc); err != nil {
		h.log.Warn(r.Context(), "image stream interrupted", "filename", name, "error", err)
	}
}
