package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DiskStore keeps blobs in a single flat directory on local disk.
type DiskStore struct {
	dir    string
	logger zerolog.Logger
}

// NewDiskStore creates the uploads directory if needed and returns a store
// rooted there.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads directory %s: %w", dir, err)
	}

	return &DiskStore{
		dir:    dir,
		logger: log.With().Str("component", "diskStore").Logger(),
	}, nil
}

// Dir returns the directory blobs are written to.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes the blob to <dir>/<name>. A partially written file from a
// failed copy is removed before the error is returned.
func (s *DiskStore) Save(ctx context.Context, name string, r io.Reader) error {
	path := filepath.Join(s.dir, filepath.Base(name))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating blob file %s: %w", name, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing blob %s: %w", name, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing blob %s: %w", name, err)
	}

	s.logger.Debug().Str("blob", name).Msg("Saved blob to disk")
	return nil
}

// Delete removes the named blob. A missing file is an error; callers decide
// whether that matters.
func (s *DiskStore) Delete(ctx context.Context, name string) error {
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("deleting blob %s: %w", name, err)
	}

	s.logger.Debug().Str("blob", name).Msg("Deleted blob from disk")
	return nil
}
