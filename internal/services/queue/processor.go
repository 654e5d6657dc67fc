package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/phambaophuc/image-resizer/internal/apperror"
	"github.com/phambaophuc/image-resizer/internal/models"
	"go.uber.org/zap"
)

// processJob runs the job through the dispatcher and records every state change.
// Request failures end up on the job; they are not retried.
func (q *QueueService) processJob(ctx context.Context, job *models.ProcessingJob) {
	job.Status = models.StatusProcessing
	q.storeJob(ctx, job)

	result, err := q.dispatch(ctx, job)
	if err != nil {
		job.Status = models.StatusFailed
		job.Error = err.Error()
		job.ErrorKind = string(apperror.KindOf(err))
		q.logger.Error("Job processing failed",
			zap.String("job_id", job.ID),
			zap.Error(err))
	} else {
		job.Status = models.StatusCompleted
		job.Result = result
		q.logger.Info("Job completed successfully",
			zap.String("job_id", job.ID))
	}

	q.storeJob(ctx, job)
}

// dispatch reports a panic in the pipeline as a job failure.
func (q *QueueService) dispatch(ctx context.Context, job *models.ProcessingJob) (result *models.ResizeResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("panic while processing job: %v", r)
		}
	}()
	return q.dispatcher.Dispatch(ctx, job.Action, job.Bundle)
}

func (q *QueueService) storeJob(ctx context.Context, job *models.ProcessingJob) {
	job.UpdatedAt = time.Now()
	if err := q.jobs.Save(ctx, job); err != nil {
		q.logger.Error("Failed to store job",
			zap.String("job_id", job.ID),
			zap.String("status", job.Status),
			zap.Error(err))
	}
}
