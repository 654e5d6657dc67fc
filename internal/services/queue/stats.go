package queue

import "context"

// HealthCheck checks if RabbitMQ is available
func (q *QueueService) HealthCheck() string {
	if q.conn != nil && q.conn.IsClosed() {
		return "unhealthy: connection closed"
	}

	if q.channel == nil {
		return "unhealthy: channel not available"
	}

	return "healthy"
}

// HealthStatus reports the broker and the job store together.
func (q *QueueService) HealthStatus(ctx context.Context) map[string]string {
	return map[string]string{
		"rabbitmq": q.HealthCheck(),
		"redis":    q.jobs.HealthCheck(ctx),
	}
}
