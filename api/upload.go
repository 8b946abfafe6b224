package api

import (
	"context"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/arcvista/backend/errs"
	"github.com/arcvista/backend/reconcile"
	"github.com/arcvista/backend/storage"
	"github.com/rs/zerolog"
)

const (
	maxUploadMemory = 32 << 20 // bytes held in memory while parsing multipart
	maxGalleryFiles = 10
)

var allowedImageExts = []string{".jpeg", ".jpg", ".png", ".webp"}

// uploadAcceptor moves multipart image files into the blob store before any
// entity logic runs, mirroring transport-level acceptance. Disallowed file
// types are rejected up front; when a later file in the same request fails,
// every blob already accepted for the request is deleted again.
type uploadAcceptor struct {
	blobs  storage.BlobStore
	logger zerolog.Logger
}

// acceptProjectFiles stores the optional `main` file and up to ten `gallery`
// files.
func (a uploadAcceptor) acceptProjectFiles(r *http.Request) (reconcile.Uploads, error) {
	var uploads reconcile.Uploads
	if r.MultipartForm == nil {
		return uploads, nil
	}

	if mains := r.MultipartForm.File["main"]; len(mains) > 0 {
		name, err := a.acceptFile(r.Context(), mains[0])
		if err != nil {
			return reconcile.Uploads{}, err
		}
		uploads.Main = name
	}

	gallery := r.MultipartForm.File["gallery"]
	if len(gallery) > maxGalleryFiles {
		a.discard(r.Context(), uploads.All())
		return reconcile.Uploads{}, errs.NewInvalidFieldError("gallery", "at most 10 files are allowed")
	}

	for _, header := range gallery {
		name, err := a.acceptFile(r.Context(), header)
		if err != nil {
			a.discard(r.Context(), uploads.All())
			return reconcile.Uploads{}, err
		}
		uploads.Gallery = append(uploads.Gallery, name)
	}

	return uploads, nil
}

// acceptSingleImage stores the optional single `image` file used by service
// and team mutations.
func (a uploadAcceptor) acceptSingleImage(r *http.Request) (reconcile.Uploads, error) {
	var uploads reconcile.Uploads
	if r.MultipartForm == nil {
		return uploads, nil
	}

	if images := r.MultipartForm.File["image"]; len(images) > 0 {
		name, err := a.acceptFile(r.Context(), images[0])
		if err != nil {
			return reconcile.Uploads{}, err
		}
		uploads.Main = name
	}

	return uploads, nil
}

// acceptFile validates extension and sniffed content type, then streams the
// file into the blob store under a generated name.
func (a uploadAcceptor) acceptFile(ctx context.Context, header *multipart.FileHeader) (string, error) {
	if !allowedImageExt(header.Filename) {
		return "", errs.NewUnsupportedMediaTypeError(header.Filename, allowedImageExts)
	}

	f, err := header.Open()
	if err != nil {
		return "", errs.NewInternalErrorWithCause("failed to open uploaded file", err)
	}
	defer f.Close()

	sniff := make([]byte, 512)
	n, _ := f.Read(sniff)
	if !allowedImageContent(http.DetectContentType(sniff[:n])) {
		return "", errs.NewUnsupportedMediaTypeError(header.Filename, allowedImageExts)
	}

	if _, err := f.Seek(0, 0); err != nil {
		return "", errs.NewInternalErrorWithCause("failed to rewind uploaded file", err)
	}

	name := storage.NewBlobName(header.Filename)
	if err := a.blobs.Save(ctx, name, f); err != nil {
		return "", errs.NewInternalErrorWithCause("failed to store uploaded file", err)
	}

	a.logger.Info().Str("blob", name).Str("original", header.Filename).Msg("Accepted upload")
	return name, nil
}

func (a uploadAcceptor) discard(ctx context.Context, names []string) {
	for _, name := range names {
		if err := a.blobs.Delete(ctx, name); err != nil {
			a.logger.Warn().Err(err).Str("blob", name).Msg("Failed to delete rejected upload")
		}
	}
}

func allowedImageExt(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range allowedImageExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

func allowedImageContent(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
		return true
	}
	return false
}
