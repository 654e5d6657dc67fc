package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/phambaophuc/image-resizer/internal/apperror"
	"github.com/phambaophuc/image-resizer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	storage_go "github.com/supabase-community/storage-go"
)

type fakeBucketClient struct {
	uploads   map[string][]byte
	options   []storage_go.FileOptions
	uploadErr error
	listErr   error
}

func (f *fakeBucketClient) UploadFile(bucketId string, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error) {
	if f.uploadErr != nil {
		return storage_go.FileUploadResponse{}, f.uploadErr
	}
	body, err := io.ReadAll(data)
	if err != nil {
		return storage_go.FileUploadResponse{}, err
	}
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	f.uploads[bucketId+":"+relativePath] = body
	f.options = append(f.options, fileOptions...)
	return storage_go.FileUploadResponse{}, nil
}

func (f *fakeBucketClient) ListFiles(bucketId string, queryPath string, options storage_go.FileSearchOptions) ([]storage_go.FileObject, error) {
	return nil, f.listErr
}

func TestBucketSinkStore(t *testing.T) {
	client := &fakeBucketClient{}
	sink := NewBucketSink(client, "images")

	require.NoError(t, sink.Store(context.Background(), []byte("\x89PNG\r\n\x1a\n"), models.FormatPNG, "file:///thumbs/2024", "a.png"))

	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), client.uploads["images:thumbs/2024/a.png"])
	require.Len(t, client.options, 1)
	assert.True(t, *client.options[0].Upsert)
	assert.Equal(t, "image/png", *client.options[0].ContentType)
}

func TestBucketSinkContentTypeFollowsFormat(t *testing.T) {
	client := &fakeBucketClient{}
	sink := NewBucketSink(client, "images")

	require.NoError(t, sink.Store(context.Background(), []byte("opaque"), models.FormatJPEG, "thumbs", "a.jpg"))

	require.Len(t, client.options, 1)
	assert.Equal(t, "image/jpeg", *client.options[0].ContentType)
}

func TestBucketSinkErrors(t *testing.T) {
	sink := NewBucketSink(&fakeBucketClient{uploadErr: errors.New("403")}, "images")

	err := sink.Store(context.Background(), []byte("x"), models.FormatJPEG, "thumbs", "a.jpg")
	assert.Equal(t, apperror.KindIO, apperror.KindOf(err))

	err = sink.Store(context.Background(), []byte("x"), models.FormatJPEG, "thumbs/../..", "a.jpg")
	assert.Equal(t, apperror.KindPath, apperror.KindOf(err))
}

func TestObjectKey(t *testing.T) {
	key, err := objectKey("/", "a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", key)

	key, err = objectKey("thumbs/small/", "a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "thumbs/small/a.jpg", key)
}

func TestBucketSinkHealthCheck(t *testing.T) {
	healthy := NewBucketSink(&fakeBucketClient{}, "images")
	assert.Equal(t, "healthy", healthy.HealthCheck(context.Background())["supabase"])

	broken := NewBucketSink(&fakeBucketClient{listErr: errors.New("no such bucket")}, "images")
	assert.Contains(t, broken.HealthCheck(context.Background())["supabase"], "unhealthy")
}
