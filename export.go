package hmsearch

import (
	"context"
	"io"

	"github.com/hupe1980/hmsearch/snapshot"
)

// Export writes a snapshot of the whole index (settings and partition
// slots) to w. The snapshot can be replayed on another host with
// Import.
func (ix *Index) Export(ctx context.Context, w io.Writer, optFns ...func(*snapshot.Options)) error {
	store, err := ix.handle()
	if err != nil {
		return err
	}
	records, err := snapshot.Write(ctx, w, store, optFns...)
	ix.logger.LogExport(ctx, records, err)
	return err
}

// Import creates a new index at path from a snapshot stream. Like
// Init, it fails with ErrStorageExists when a store is already present
// at path.
func Import(ctx context.Context, path string, r io.Reader, optFns ...Option) error {
	o := applyOptions(optFns)

	store, err := o.opener(path, true)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := snapshot.Read(ctx, r, store)
	o.logger.LogImport(ctx, records, err)
	if err != nil {
		return err
	}
	return store.Close()
}
