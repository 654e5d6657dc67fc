package storage

import (
	"bytes"
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/phambaophuc/image-resizer/internal/apperror"
	"github.com/phambaophuc/image-resizer/internal/models"
	"github.com/phambaophuc/image-resizer/pkg/utils"
	storage_go "github.com/supabase-community/storage-go"
)

// bucketClient is the part of *storage_go.Client the sink needs.
type bucketClient interface {
	UploadFile(bucketId string, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
	ListFiles(bucketId string, queryPath string, options storage_go.FileSearchOptions) ([]storage_go.FileObject, error)
}

// BucketSink stores images in a Supabase storage bucket. The directory becomes
// the object key prefix.
type BucketSink struct {
	client bucketClient
	bucket string
}

func NewBucketSink(client bucketClient, bucket string) *BucketSink {
	return &BucketSink{
		client: client,
		bucket: bucket,
	}
}

func (s *BucketSink) Store(ctx context.Context, data []byte, format models.Format, directory, filename string) error {
	key, err := objectKey(directory, filename)
	if err != nil {
		return err
	}

	contentType := format.ContentType()
	upsert := true
	_, err = s.client.UploadFile(s.bucket, key, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return apperror.IO(err, "failed to upload %s to supabase", key)
	}
	return nil
}

func (s *BucketSink) Name() string {
	return "supabase"
}

func objectKey(directory, filename string) (string, error) {
	dir, err := utils.NormalizePath(directory)
	if err != nil {
		return "", apperror.Path(err, "invalid directory")
	}
	if err := utils.ValidateFilename(filename); err != nil {
		return "", apperror.Path(err, "invalid filename")
	}

	prefix := strings.Trim(filepath.ToSlash(dir), "/")
	if prefix == "." {
		prefix = ""
	}
	return path.Join(prefix, filename), nil
}
