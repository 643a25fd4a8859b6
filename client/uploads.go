package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
)

// UploadService handles property image uploads.
type UploadService struct {
	c *Client
}

// UploadImage sends one image for a property as multipart field "file".
func (s *UploadService) UploadImage(ctx context.Context, propertyID int64, file FileUpload, isPrimary bool) (*UploadedImage, error) {
	var resp struct {
		Message string        `json:"message"`
		Image   UploadedImage `json:"image"`
	}
	fields := map[string]string{"is_primary": strconv.FormatBool(isPrimary)}
	path := fmt.Sprintf("/admin/upload/property-image/%d", propertyID)
	if err := s.multipart(ctx, path, "file", []FileUpload{file}, fields, &resp); err != nil {
		return nil, err
	}
	return &resp.Image, nil
}

// UploadImages sends several images as repeated multipart field "files".
// The server skips files it cannot store and fails only when none succeed.
func (s *UploadService) UploadImages(ctx context.Context, propertyID int64, files []FileUpload) (*UploadResult, error) {
	if len(files) == 0 {
		return nil, &ValidationError{Field: "files", Message: "at least one file is required"}
	}
	var resp UploadResult
	path := fmt.Sprintf("/admin/upload/property-images/%d", propertyID)
	if err := s.multipart(ctx, path, "files", files, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *UploadService) DeleteImage(ctx context.Context, imageID int64) error {
	return s.c.del(ctx, fmt.Sprintf("/admin/upload/property-image/%d", imageID))
}

// SetPrimary marks an image primary and clears the flag on its siblings.
func (s *UploadService) SetPrimary(ctx context.Context, imageID int64) error {
	return s.c.put(ctx, fmt.Sprintf("/admin/upload/property-image/%d/set-primary", imageID), nil, nil)
}

// multipart posts files and form fields. The content type comes from the
// multipart writer so the JSON header is never set.
func (s *UploadService) multipart(ctx context.Context, path, field string, files []FileUpload, fields map[string]string, result any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile(field, filepath.Base(f.Name))
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return fmt.Errorf("copy %s: %w", f.Name, err)
		}
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}

	req, err := s.c.newRequest(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return s.c.send(req, result)
}
