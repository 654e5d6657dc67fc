package queue

import (
	"fmt"

	"github.com/phambaophuc/image-resizer/internal/config"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

type QueueService struct {
	conn       *amqp.Connection
	channel    amqpChannel
	logger     *zap.Logger
	queueName  string
	dispatcher Dispatcher
	jobs       JobStore
}

func NewQueueService(
	cfg config.RabbitMQConfig,
	dispatcher Dispatcher,
	jobs JobStore,
	logger *zap.Logger,
) (*QueueService, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// Declare queue
	_, err = channel.QueueDeclare(
		cfg.Queue, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	// one unacked job per consumer, image work is CPU bound
	if err := channel.Qos(1, 0, false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set qos: %w", err)
	}

	svc := newQueueService(channel, cfg.Queue, dispatcher, jobs, logger)
	svc.conn = conn
	return svc, nil
}

func newQueueService(channel amqpChannel, queueName string, dispatcher Dispatcher, jobs JobStore, logger *zap.Logger) *QueueService {
	return &QueueService{
		channel:    channel,
		logger:     logger,
		queueName:  queueName,
		dispatcher: dispatcher,
		jobs:       jobs,
	}
}

// Close closes the queue connection
func (q *QueueService) Close() error {
	if q.channel != nil {
		q.channel.Close()
	}
	if q.conn != nil {
		q.conn.Close()
	}
	return nil
}
