// Package reconcile makes entity-with-attached-blobs mutations appear atomic
// to the caller despite the underlying store having no multi-object
// transaction. Every engine follows the same contract: validate before
// writing, and on any failure after blobs were accepted for the request,
// delete every one of those blobs before returning the error. Blobs that
// belong to the pre-existing record state are never touched on failure.
package reconcile

import (
	"context"

	"github.com/arcvista/backend/storage"
	"github.com/rs/zerolog"
)

// Uploads is the set of blob names the transport layer accepted for a single
// request: at most one main image plus gallery files in upload order.
type Uploads struct {
	Main    string
	Gallery []string
}

// All returns every accepted blob name.
func (u Uploads) All() []string {
	var names []string
	if u.Main != "" {
		names = append(names, u.Main)
	}
	return append(names, u.Gallery...)
}

// discardBlobs deletes the named blobs best-effort. Individual failures are
// logged and swallowed: a leaked file never blocks the primary operation's
// result.
func discardBlobs(ctx context.Context, blobs storage.BlobStore, logger zerolog.Logger, names []string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if err := blobs.Delete(ctx, name); err != nil {
			logger.Warn().Err(err).Str("blob", name).Msg("Failed to delete blob")
		} else {
			logger.Info().Str("blob", name).Msg("Deleted blob")
		}
	}
}
