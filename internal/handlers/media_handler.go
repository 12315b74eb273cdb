package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/estately/backend/internal/middleware"
	"github.com/estately/backend/internal/models"
	"github.com/estately/backend/internal/services"
)

type MediaHandler struct {
	media     services.MediaService
	maxSizeMB int64
}

func NewMediaHandler(media services.MediaService, maxSizeMB int64) *MediaHandler {
	return &MediaHandler{media: media, maxSizeMB: maxSizeMB}
}

// Upload stores every multipart part named "files" and returns their
// descriptors in upload order.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	limit := h.maxSizeMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("File too large or invalid form data"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("No files provided"))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), 2*requestTimeout)
	defer cancel()

	uploaded := make([]models.MediaFile, 0, len(headers))
	for _, fh := range headers {
		contentType := fh.Header.Get("Content-Type")
		if !services.IsAllowedMedia(contentType) {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Unsupported file type: "+fh.Filename))
			return
		}

		f, err := fh.Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Could not read "+fh.Filename))
			return
		}
		file, err := h.media.Upload(ctx, fh.Filename, contentType, f)
		f.Close()
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidMedia):
				writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Unsupported file type: "+fh.Filename))
			case errors.Is(err, services.ErrMediaRejected):
				writeJSON(w, http.StatusUnprocessableEntity, models.NewErrorResponse("Image rejected by content moderation: "+fh.Filename))
			default:
				slog.Error("media upload", "name", fh.Filename, "err", err)
				writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to upload "+fh.Filename))
			}
			return
		}
		uploaded = append(uploaded, *file)
	}

	slog.Info("media uploaded", "count", len(uploaded), "user_id", middleware.GetUserID(r.Context()))
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(uploaded))
}

func (h *MediaHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	files, err := h.media.Search(ctx, r.URL.Query().Get("search"))
	if err != nil {
		slog.Error("media search", "err", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to search media"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(files))
}

func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	fileID := chi.URLParam(r, "fileId")
	if err := h.media.Delete(ctx, fileID); err != nil {
		if errors.Is(err, services.ErrMediaNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Media not found"))
			return
		}
		slog.Error("media delete", "file_id", fileID, "err", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete media"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Media deleted successfully"}))
}
