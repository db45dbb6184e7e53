// Package storage holds uploaded entry images behind a provider abstraction:
// a local directory for single-box deployments, an S3-compatible bucket
// otherwise. Uploads are independent of entry mutations; entries only carry
// the opaque keys returned here.
package storage

import (
	"io"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/google/uuid"

	"pitwall/internal/config"
)

const uploadsBucket = "uploads"

type Client struct {
	backend Provider
	bucket  string
}

func New(cfg *config.Config) *Client {
	var backend Provider
	bucket := uploadsBucket

	if cfg.Storage.Provider == "local" {
		backend = NewLocalProvider(cfg.Storage.LocalDir)
	} else {
		s3Config := &aws.Config{
			Credentials:      credentials.NewStaticCredentials(cfg.Storage.KeyID, cfg.Storage.AppKey, ""),
			Endpoint:         aws.String(cfg.Storage.Endpoint),
			Region:           aws.String(cfg.Storage.Region),
			S3ForcePathStyle: aws.Bool(true),
		}
		sess := session.Must(session.NewSession(s3Config))
		backend = NewS3Provider(sess)
		bucket = cfg.Storage.Bucket
	}

	return &Client{backend: backend, bucket: bucket}
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SaveImage stores an uploaded file under a collision-free key derived from
// the original filename and returns that key.
func (c *Client) SaveImage(filename string, body io.ReadSeeker, contentType string) (string, error) {
	key := uuid.NewString() + "-" + sanitizeName(filename)
	if err := c.backend.Put(c.bucket, key, body, contentType); err != nil {
		return "", err
	}
	return key, nil
}

// OpenImage fetches a stored file by key.
func (c *Client) OpenImage(key string) (*FileObject, error) {
	return c.backend.Get(c.bucket, key)
}

// DeleteImage removes a stored file by key.
func (c *Client) DeleteImage(key string) error {
	return c.backend.Delete(c.bucket, key)
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	if name == "" {
		name = "upload"
	}
	return name
}
