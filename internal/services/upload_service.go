package services

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"househunters/internal/domain"
	"househunters/internal/domain/models"
	"househunters/internal/metrics"
	"househunters/internal/repositories"
	"househunters/internal/utils"
)

// FileStore persists uploaded image bytes.
type FileStore interface {
	Save(propertyID int64, filename string, r io.Reader) (string, error)
	Remove(url string) error
}

// Upload is one file received from a multipart form.
type Upload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

type UploadService struct {
	Properties repositories.PropertyRepository
	Images     repositories.ImageRepository
	Files      FileStore
	Log        logrus.FieldLogger
	RequestID  string
}

func (s UploadService) log(action, msg string) {
	utils.LogEvent(s.Log, s.RequestID, "uploads", action, msg)
}

func (s UploadService) store(propertyID int64, u Upload) (string, error) {
	rc, err := u.Open()
	if err != nil {
		return "", domain.InternalError{Msg: "Error reading upload", Err: err}
	}
	defer rc.Close()
	return s.Files.Save(propertyID, u.Filename, rc)
}

// UploadOne stores a single image at the end of the display order.
func (s UploadService) UploadOne(ctx context.Context, propertyID int64, u Upload, isPrimary bool) (models.UploadedImage, error) {
	if _, err := s.Properties.Get(ctx, propertyID); err != nil {
		return models.UploadedImage{}, err
	}
	url, err := s.store(propertyID, u)
	if err != nil {
		metrics.ImagesUploaded.WithLabelValues("rejected").Inc()
		return models.UploadedImage{}, err
	}
	order, err := s.Images.NextOrder(ctx, propertyID)
	if err != nil {
		_ = s.Files.Remove(url)
		return models.UploadedImage{}, err
	}
	img, err := s.Images.Add(ctx, propertyID, url, isPrimary, order)
	if err != nil {
		_ = s.Files.Remove(url)
		return models.UploadedImage{}, err
	}
	metrics.ImagesUploaded.WithLabelValues("ok").Inc()
	s.log("upload", fmt.Sprintf("property_id=%d image_id=%d", propertyID, img.ID))
	return models.UploadedImage{ID: img.ID, URL: img.ImageURL, IsPrimary: img.IsPrimary}, nil
}

// UploadMany stores several images. When the property has no primary image
// the first stored file becomes primary. Files that fail are skipped; the
// call fails only when none was stored.
func (s UploadService) UploadMany(ctx context.Context, propertyID int64, uploads []Upload) ([]models.UploadedImage, error) {
	if len(uploads) == 0 {
		return nil, domain.ValidationError{Field: "files", Msg: "at least one file is required"}
	}
	if _, err := s.Properties.Get(ctx, propertyID); err != nil {
		return nil, err
	}
	hasPrimary, err := s.Images.HasPrimary(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	base, err := s.Images.NextOrder(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	out := []models.UploadedImage{}
	for i, u := range uploads {
		url, err := s.store(propertyID, u)
		if err != nil {
			metrics.ImagesUploaded.WithLabelValues("rejected").Inc()
			s.logSkip(u.Filename, err)
			continue
		}
		primary := !hasPrimary && len(out) == 0
		img, err := s.Images.Add(ctx, propertyID, url, primary, base+i)
		if err != nil {
			_ = s.Files.Remove(url)
			s.logSkip(u.Filename, err)
			continue
		}
		metrics.ImagesUploaded.WithLabelValues("ok").Inc()
		out = append(out, models.UploadedImage{ID: img.ID, URL: img.ImageURL, IsPrimary: img.IsPrimary})
	}
	if len(out) == 0 {
		return nil, domain.InternalError{Msg: "Failed to upload any images"}
	}
	s.log("upload_many", fmt.Sprintf("property_id=%d stored=%d of=%d", propertyID, len(out), len(uploads)))
	return out, nil
}

func (s UploadService) logSkip(name string, err error) {
	if s.Log == nil {
		return
	}
	s.Log.WithError(err).WithFields(logrus.Fields{
		"request_id": s.RequestID,
		"file":       name,
	}).Warn("skipped upload")
}

// DeleteImage removes the record, then the file.
func (s UploadService) DeleteImage(ctx context.Context, id int64) error {
	img, _, err := s.Images.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Images.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Files.Remove(img.ImageURL); err != nil && s.Log != nil {
		s.Log.WithError(err).WithField("url", img.ImageURL).Warn("remove image file")
	}
	s.log("delete_image", fmt.Sprintf("image_id=%d", id))
	return nil
}

func (s UploadService) SetPrimary(ctx context.Context, id int64) error {
	if err := s.Images.SetPrimary(ctx, id); err != nil {
		return err
	}
	s.log("set_primary", fmt.Sprintf("image_id=%d", id))
	return nil
}
