package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"househunters/internal/domain"
	"househunters/internal/services"
)

func toUpload(fh *multipart.FileHeader) services.Upload {
	return services.Upload{
		Filename: fh.Filename,
		Open:     func() (io.ReadCloser, error) { return fh.Open() },
	}
}

// POST /api/admin/upload/property-image/:id
func (h *Handler) UploadImage(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		h.RespondDomainError(c, domain.ValidationError{Field: "file", Msg: "is required", Err: err})
		return
	}
	isPrimary, _ := strconv.ParseBool(c.DefaultPostForm("is_primary", "false"))

	img, err := h.uploads(c).UploadOne(c.Request.Context(), id, toUpload(fh), isPrimary)
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image uploaded successfully", "image": img})
}

// POST /api/admin/upload/property-images/:id
func (h *Handler) UploadImages(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		h.RespondDomainError(c, domain.ValidationError{Field: "files", Msg: "multipart form is required", Err: err})
		return
	}
	uploads := make([]services.Upload, 0, len(form.File["files"]))
	for _, fh := range form.File["files"] {
		uploads = append(uploads, toUpload(fh))
	}

	imgs, err := h.uploads(c).UploadMany(c.Request.Context(), id, uploads)
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Uploaded %d images successfully", len(imgs)),
		"images":  imgs,
	})
}

// DELETE /api/admin/upload/property-image/:id
func (h *Handler) DeleteImage(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	if err := h.uploads(c).DeleteImage(c.Request.Context(), id); err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PUT /api/admin/upload/property-image/:id/set-primary
func (h *Handler) SetPrimaryImage(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	if err := h.uploads(c).SetPrimary(c.Request.Context(), id); err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Primary image updated successfully", "image_id": id})
}
