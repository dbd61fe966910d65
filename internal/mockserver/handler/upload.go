package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hungrynow/hungrynow/internal/mockserver/service"
	"github.com/hungrynow/hungrynow/pkg/httputil"
)

// ImageField is the multipart field carrying the uploaded image.
const ImageField = "image"

// uploadResponse is the one body of the API not wrapped in the data
// envelope.
type uploadResponse struct {
	Message  string `json:"message"`
	ImageURL string `json:"imageUrl"`
}

// UploadHandler accepts image uploads and serves them back.
type UploadHandler struct {
	images    *service.ImageStore
	publicURL string
	logger    *slog.Logger
}

// NewUploadHandler creates a new upload HTTP handler. Image URLs are built
// on publicURL.
func NewUploadHandler(images *service.ImageStore, publicURL string, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{images: images, publicURL: publicURL, logger: logger}
}

// Upload handles POST /api/upload/image
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxImageBytes+1<<20)

	file, _, err := r.FormFile(ImageField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteJSON(w, http.StatusRequestEntityTooLarge, httputil.ErrorResponse{
				Message: "image must be at most 5 MB", Code: "PAYLOAD_TOO_LARGE",
			})
			return
		}
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Message: "multipart field " + strconv.Quote(ImageField) + " is required", Code: "INVALID_INPUT",
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageBytes+1))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	name, err := h.images.Save(data)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, uploadResponse{
		Message:  "Image uploaded successfully",
		ImageURL: h.publicURL + "/uploads/" + name,
	})
}

// Serve handles GET /uploads/{name}
func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	img, err := h.images.Get(chi.URLParam(r, "name"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(img.Data)
}
