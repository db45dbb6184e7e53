package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

type LocalProvider struct {
	// RootPath is the directory where buckets are simulated (e.g., "./data")
	RootPath string
}

func NewLocalProvider(root string) *LocalProvider {
	_ = os.MkdirAll(root, 0755)
	return &LocalProvider{RootPath: root}
}

func (l *LocalProvider) Get(bucket, key string) (*FileObject, error) {
	path, err := l.resolve(bucket, key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	return &FileObject{
		Body:          f,
		ContentLength: stat.Size(),
		ContentType:   "application/octet-stream", // Local files usually don't store this
		LastModified:  stat.ModTime(),
	}, nil
}

func (l *LocalProvider) Put(bucket, key string, body io.ReadSeeker, contentType string) error {
	path, err := l.resolve(bucket, key)
	if err != nil {
		return err
	}

	// Ensure sub-directories exist (e.g. bucket/folder/photo.jpg)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, body)
	return err
}

func (l *LocalProvider) Delete(bucket, key string) error {
	path, err := l.resolve(bucket, key)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// resolve maps a key to a path and guarantees the result stays inside the
// bucket directory, so a key like "../../data.json" can never escape it.
func (l *LocalProvider) resolve(bucket, key string) (string, error) {
	base := filepath.Join(l.RootPath, bucket)
	path := filepath.Join(base, key)
	if path == base || !strings.HasPrefix(path, base+string(filepath.Separator)) {
		return "", os.ErrNotExist
	}
	return path, nil
}
