package services

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"househunters/internal/domain"
	"househunters/internal/repositories"
	"househunters/internal/storage"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func upload(name string, data []byte) Upload {
	return Upload{Filename: name, Open: func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}}
}

func newUploadFixture(t *testing.T) (UploadService, repositories.Store, storage.Local, int64) {
	t.Helper()
	_, store := newMemoryStore()
	files := storage.Local{
		Dir: t.TempDir(), URLPrefix: "/uploads/properties", MaxSize: 1024,
		AllowedExts: []string{".jpg", ".png"},
	}
	p, err := PropertyService{Repo: store.Properties}.Create(context.Background(), validPropertyInput())
	require.NoError(t, err)
	return UploadService{Properties: store.Properties, Images: store.Images, Files: files}, store, files, p.ID
}

func TestUploadManyFirstStoredBecomesPrimary(t *testing.T) {
	ctx := context.Background()
	svc, store, files, id := newUploadFixture(t)

	imgs, err := svc.UploadMany(ctx, id, []Upload{
		upload("notes.txt", []byte("hello")),
		upload("front.png", pngBytes),
		upload("back.png", pngBytes),
	})
	require.NoError(t, err)
	require.Len(t, imgs, 2)
	require.True(t, imgs[0].IsPrimary)
	require.False(t, imgs[1].IsPrimary)
	require.True(t, strings.HasPrefix(imgs[0].URL, "/uploads/properties/"))
	require.True(t, files.Exists(imgs[0].URL))

	p, err := store.Properties.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, p.Images, 2)

	more, err := svc.UploadMany(ctx, id, []Upload{upload("side.png", pngBytes)})
	require.NoError(t, err)
	require.False(t, more[0].IsPrimary)
}

func TestUploadManyAllFailing(t *testing.T) {
	svc, _, _, id := newUploadFixture(t)
	_, err := svc.UploadMany(context.Background(), id, []Upload{upload("a.gif", pngBytes)})
	require.True(t, domain.IsInternal(err))
	require.Equal(t, "Failed to upload any images", err.Error())

	_, err = svc.UploadMany(context.Background(), id, nil)
	require.True(t, domain.IsValidation(err))
}

func TestUploadOneRejectsOversizeAndUnknownProperty(t *testing.T) {
	ctx := context.Background()
	svc, _, _, id := newUploadFixture(t)

	_, err := svc.UploadOne(ctx, id, upload("big.png", append(pngBytes, make([]byte, 2048)...)), false)
	require.True(t, domain.IsValidation(err))
	require.Contains(t, err.Error(), "File too large")

	_, err = svc.UploadOne(ctx, 999, upload("a.png", pngBytes), false)
	require.True(t, domain.IsNotFound(err))
}

func TestSetPrimaryAndDeleteImage(t *testing.T) {
	ctx := context.Background()
	svc, store, files, id := newUploadFixture(t)
	first, err := svc.UploadOne(ctx, id, upload("a.png", pngBytes), true)
	require.NoError(t, err)
	second, err := svc.UploadOne(ctx, id, upload("b.png", pngBytes), false)
	require.NoError(t, err)

	require.NoError(t, svc.SetPrimary(ctx, second.ID))
	p, err := store.Properties.Get(ctx, id)
	require.NoError(t, err)
	primary, ok := p.PrimaryImage()
	require.True(t, ok)
	require.Equal(t, second.ID, primary.ID)

	require.NoError(t, svc.DeleteImage(ctx, first.ID))
	require.False(t, files.Exists(first.URL))
	require.True(t, domain.IsNotFound(svc.DeleteImage(ctx, first.ID)))
	require.True(t, domain.IsNotFound(svc.SetPrimary(ctx, first.ID)))
}

func TestUploadOneOrdersAfterHighestAfterDelete(t *testing.T) {
	ctx := context.Background()
	svc, store, _, id := newUploadFixture(t)

	first, err := svc.UploadOne(ctx, id, upload("a.png", pngBytes), true)
	require.NoError(t, err)
	_, err = svc.UploadOne(ctx, id, upload("b.png", pngBytes), false)
	require.NoError(t, err)
	_, err = svc.UploadOne(ctx, id, upload("c.png", pngBytes), false)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteImage(ctx, first.ID))

	_, err = svc.UploadOne(ctx, id, upload("d.png", pngBytes), false)
	require.NoError(t, err)

	p, err := store.Properties.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, p.Images, 3)
	seen := map[int]bool{}
	for _, img := range p.Images {
		require.False(t, seen[img.DisplayOrder], "display_order %d repeated", img.DisplayOrder)
		seen[img.DisplayOrder] = true
	}
	require.True(t, seen[3])
}
