// Package blob stores and retrieves binary note payloads by generated
// identifier, with the uploaded filename and content type attached as
// metadata. The note layer holds only the returned id.
package blob

import (
	"context"
)

// Metadata keys attached to every stored object.
const (
	MetaFilename  = "filename"
	MetaExtension = "extension"
	MetaOriginal  = "original-filename"
)

// Object is a stored payload plus the metadata recorded at put time.
type Object struct {
	Data        []byte
	Filename    string
	ContentType string
	Metadata    map[string]string
}

// Store is the blob store contract. Identifiers are opaque strings minted by
// Put; a malformed id yields model.ErrInvalidID, an absent one
// model.ErrNotFound, and write failures wrap model.ErrStorageWrite.
//
// The underlying stores do not support in-place rename, so Rename is
// specified as write-new + delete-old: it returns a fresh id, and a failure
// to delete the old entry leaks a harmless duplicate instead of failing the
// operation.
type Store interface {
	Put(ctx context.Context, data []byte, name, contentType string, metadata map[string]string) (string, error)
	Get(ctx context.Context, id string) (*Object, error)
	// Delete is idempotent: deleting an absent entry is not an error.
	Delete(ctx context.Context, id string) error
	Rename(ctx context.Context, id, name string) (string, error)
}
