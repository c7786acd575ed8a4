package interfaces

import (
	"context"
	"io"
)

// FileStorage keeps uploaded images and hands out public URLs for them.
type FileStorage interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
	PublicURL(name string) string
}
