package queue

import (
	"context"
	"errors"

	"github.com/phambaophuc/image-resizer/internal/models"
	"github.com/streadway/amqp"
)

var ErrJobNotFound = errors.New("job not found")

// amqpChannel is the subset of *amqp.Channel the service uses.
type amqpChannel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// Dispatcher runs a single image request.
type Dispatcher interface {
	Dispatch(ctx context.Context, action models.Action, bundle models.Bundle) (*models.ResizeResult, error)
}

// JobStore keeps the latest state of every job.
type JobStore interface {
	Save(ctx context.Context, job *models.ProcessingJob) error
	Get(ctx context.Context, id string) (*models.ProcessingJob, error)
	HealthCheck(ctx context.Context) string
}
