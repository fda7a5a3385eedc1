package handlers

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rentwheels/fleet-api/internal/httperr"
	"github.com/rentwheels/fleet-api/internal/images"
	"github.com/rentwheels/fleet-api/internal/storage"
)

const maxUploadBytes = 10 << 20 // 10 MiB

var allowedUploadExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
	".webp": true,
}

type UploadHandler struct {
	storage       storage.Storage
	imageMaxWidth int
}

func NewUploadHandler(store storage.Storage, imageMaxWidth int) *UploadHandler {
	return &UploadHandler{storage: store, imageMaxWidth: imageMaxWidth}
}

// Document accepts a multipart "file" and stores it under a random name.
// With kind=car_image the file is normalized to a downscaled webp first;
// identity documents are stored as uploaded.
func (h *UploadHandler) Document(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "A multipart 'file' field is required.")
		return
	}

	if file.Size > maxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "Uploads are limited to 10 MiB.")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExt[ext] {
		httperr.BadRequest(c, "unsupported_file_type", "Only jpg, png, webp and pdf uploads are accepted.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_upload", "Could not read upload.")
		return
	}
	defer src.Close()

	name := uuid.NewString() + ext
	contentType := file.Header.Get("Content-Type")

	var url string
	if c.PostForm("kind") == "car_image" && ext != ".pdf" {
		converted, err := images.Normalize(src, h.imageMaxWidth)
		if err != nil {
			httperr.BadRequest(c, "invalid_image", "Car images must be decodable jpg/png files.")
			return
		}
		name = uuid.NewString() + ".webp"
		url, err = h.storage.Save(c.Request.Context(), name, bytes.NewReader(converted), "image/webp")
		if err != nil {
			httperr.Internal(c, "failed_to_store_upload", "Could not store upload.")
			return
		}
	} else {
		url, err = h.storage.Save(c.Request.Context(), name, src, contentType)
		if err != nil {
			httperr.Internal(c, "failed_to_store_upload", "Could not store upload.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
