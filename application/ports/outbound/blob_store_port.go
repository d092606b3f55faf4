package outbound

import "context"

type BlobStorePort interface {
	Save(ctx context.Context, data []byte, logicalPath string, contentType string) (string, error)
	Delete(ctx context.Context, ref string) error
	// UrlFor resolves a ref to something external tools can read: a
	// filesystem path for the local store, an https URL for S3.
	UrlFor(ref string) string
}
