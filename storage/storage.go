package storage

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"time"
)

// BlobStore persists uploaded image bytes under generated names. Save and
// Delete are the only operations the rest of the system needs; cleanup
// callers treat Delete errors as log-and-continue.
type BlobStore interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Delete(ctx context.Context, name string) error
}

// NewBlobName generates a collision-resistant blob name from the original
// filename: <unix-ms>-<random-int><original-extension>.
func NewBlobName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1_000_000_000), ext)
}
