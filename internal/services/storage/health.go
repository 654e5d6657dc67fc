package storage

import (
	"context"
	"fmt"

	storage_go "github.com/supabase-community/storage-go"
)

// HealthCheck lists the bucket root to prove credentials and bucket are usable.
func (s *BucketSink) HealthCheck(ctx context.Context) map[string]string {
	status := make(map[string]string)

	_, err := s.client.ListFiles(s.bucket, "", storage_go.FileSearchOptions{Limit: 1})
	if err != nil {
		status["supabase"] = "unhealthy: " + fmt.Sprintf("%v", err)
	} else {
		status["supabase"] = "healthy"
	}

	return status
}
