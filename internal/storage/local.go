// Package storage keeps uploaded property images on the local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"househunters/internal/domain"
	"househunters/internal/utils"
)

// Local writes files under Dir/<property id>/ and serves them under URLPrefix.
type Local struct {
	Dir         string
	URLPrefix   string
	MaxSize     int64
	AllowedExts []string
	// NewName returns the file stem; defaults to a random uuid.
	NewName func() string
}

func (l Local) name() string {
	if l.NewName != nil {
		return l.NewName()
	}
	return uuid.New().String()
}

// Save validates and stores one image, returning its public URL.
func (l Local) Save(propertyID int64, filename string, r io.Reader) (string, error) {
	ext := utils.NormalizeExt(filename)
	if !utils.ContainsFold(l.AllowedExts, ext) {
		return "", domain.ValidationError{
			Msg: "Invalid file type. Allowed: " + strings.Join(l.AllowedExts, ", "),
		}
	}

	data, err := io.ReadAll(io.LimitReader(r, l.MaxSize+1))
	if err != nil {
		return "", domain.InternalError{Msg: "Error reading upload", Err: err}
	}
	if int64(len(data)) > l.MaxSize {
		return "", domain.ValidationError{
			Msg: fmt.Sprintf("File too large. Maximum size: %.1fMB", float64(l.MaxSize)/(1024*1024)),
		}
	}
	if len(data) == 0 {
		return "", domain.ValidationError{Msg: "File is empty"}
	}
	if mt := mimetype.Detect(data); !strings.HasPrefix(mt.String(), "image/") {
		return "", domain.ValidationError{Msg: "File content is not an image (" + mt.String() + ")"}
	}

	sub := strconv.FormatInt(propertyID, 10)
	dir := filepath.Join(l.Dir, sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", domain.InternalError{Msg: "Error saving file", Err: err}
	}
	stored := l.name() + ext
	if err := os.WriteFile(filepath.Join(dir, stored), data, 0o644); err != nil {
		return "", domain.InternalError{Msg: "Error saving file", Err: err}
	}
	return path.Join(l.URLPrefix, sub, stored), nil
}

// Remove deletes the file behind a URL returned by Save. Missing files and
// URLs outside URLPrefix are ignored.
func (l Local) Remove(url string) error {
	p, ok := l.pathFor(url)
	if !ok {
		return nil
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (l Local) pathFor(url string) (string, bool) {
	prefix := strings.TrimSuffix(l.URLPrefix, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	rel := path.Clean("/" + strings.TrimPrefix(url, prefix))
	if rel == "/" {
		return "", false
	}
	return filepath.Join(l.Dir, filepath.FromSlash(rel)), true
}

// Exists reports whether the file behind url is on disk.
func (l Local) Exists(url string) bool {
	p, ok := l.pathFor(url)
	if !ok {
		return false
	}
	_, err := os.Stat(p)
	return err == nil
}
