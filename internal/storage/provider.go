package storage

import (
	"io"
	"time"
)

// Provider defines the behavior for any upload backend.
type Provider interface {
	Get(bucket, key string) (*FileObject, error)
	Put(bucket, key string, body io.ReadSeeker, contentType string) error
	Delete(bucket, key string) error
}

// FileObject is the provider-agnostic representation of a stored file.
type FileObject struct {
	Body          io.ReadCloser
	ContentLength int64
	ContentType   string
	LastModified  time.Time
}
