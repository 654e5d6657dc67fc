package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/phambaophuc/image-resizer/internal/apperror"
	"github.com/phambaophuc/image-resizer/internal/models"
	"github.com/phambaophuc/image-resizer/pkg/utils"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Submit records a pending job and hands it to the queue.
func (q *QueueService) Submit(ctx context.Context, action models.Action, bundle models.Bundle) (*models.ProcessingJob, error) {
	if !action.Valid() {
		return nil, apperror.UnknownAction(string(action))
	}

	job := &models.ProcessingJob{
		ID:        utils.GenerateJobID(),
		Action:    action,
		Bundle:    bundle,
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
	}

	if err := q.jobs.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}
	if err := q.PublishJob(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (q *QueueService) PublishJob(ctx context.Context, job *models.ProcessingJob) error {
	jobBytes, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	err = q.channel.Publish(
		"",          // exchange
		q.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         jobBytes,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			MessageId:    job.ID,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish job: %w", err)
	}

	q.logger.Info("Job published to queue", zap.String("job_id", job.ID), zap.String("action", string(job.Action)))
	return nil
}

func (q *QueueService) GetJob(ctx context.Context, id string) (*models.ProcessingJob, error) {
	return q.jobs.Get(ctx, id)
}
