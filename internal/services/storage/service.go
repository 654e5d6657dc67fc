package storage

import (
	"context"
	"fmt"

	"github.com/phambaophuc/image-resizer/internal/config"
	"github.com/phambaophuc/image-resizer/internal/models"
	storage_go "github.com/supabase-community/storage-go"
)

// Sink persists encoded images under a directory and filename.
type Sink interface {
	Store(ctx context.Context, data []byte, format models.Format, directory, filename string) error
	HealthCheck(ctx context.Context) map[string]string
	Name() string
}

// NewSink builds the sink selected by STORAGE_BACKEND.
func NewSink(cfg *config.Config) (Sink, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendLocal, "":
		sink, err := NewLocalSink(cfg.Storage.Root)
		if err != nil {
			return nil, err
		}
		return sink, nil
	case config.StorageBackendSupabase:
		client := storage_go.NewClient(cfg.Supabase.URL+"/storage/v1", cfg.Supabase.KEY, nil)
		return NewBucketSink(client, cfg.Supabase.BUCKET), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Storage.Backend)
	}
}
