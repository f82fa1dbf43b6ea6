// Package objstore wraps the external object storage used for uploaded
// images: blobs addressed by key inside a bucket, served from public URLs.
package objstore

import (
	"context"
	"path"
	"strings"
	"time"
)

// Object describes a stored blob as returned by a listing.
type Object struct {
	Key       string
	Size      int64
	UpdatedAt time.Time
}

type Store interface {
	// Upload stores data under key with the given content type and
	// returns the blob's public URL.
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)

	// Delete removes the blob under key.
	Delete(ctx context.Context, key string) error

	// List returns every object whose key starts with prefix. An empty
	// prefix lists the whole bucket.
	List(ctx context.Context, prefix string) ([]Object, error)
}

// KeyFromURL derives the storage key from a public blob URL. Keys carry a
// product-id folder prefix (`{product_id}/{uuid}.{ext}`), so when the
// second-to-last path segment is numeric both segments form the key;
// otherwise only the last one does.
func KeyFromURL(url string) string {
	trimmed := strings.TrimRight(url, "/")
	dir, file := path.Split(trimmed)
	if file == "" {
		return ""
	}
	parent := path.Base(strings.TrimRight(dir, "/"))
	if isNumeric(parent) {
		return parent + "/" + file
	}
	return file
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
