package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-resizer/internal/models"
	"github.com/phambaophuc/image-resizer/internal/services/storage"
	"go.uber.org/zap"
)

const actionParamKey = "action"

// ImageService runs a single image request synchronously.
type ImageService interface {
	Dispatch(ctx context.Context, action models.Action, bundle models.Bundle) (*models.ResizeResult, error)
}

// JobQueue runs image requests asynchronously.
type JobQueue interface {
	Submit(ctx context.Context, action models.Action, bundle models.Bundle) (*models.ProcessingJob, error)
	GetJob(ctx context.Context, id string) (*models.ProcessingJob, error)
	HealthStatus(ctx context.Context) map[string]string
}

type ImageHandler struct {
	images ImageService
	queue  JobQueue
	sink   storage.Sink
	logger *zap.Logger
}

// NewImageHandler wires the handler; queue may be nil when no broker is configured.
func NewImageHandler(
	images ImageService,
	queue JobQueue,
	sink storage.Sink,
	logger *zap.Logger,
) *ImageHandler {
	return &ImageHandler{
		images: images,
		queue:  queue,
		sink:   sink,
		logger: logger,
	}
}

// === MAIN API ENDPOINTS ===

// ProcessImage runs resizeImage, imageSize or storeImage and answers with the result.
func (h *ImageHandler) ProcessImage(c *gin.Context) {
	action, bundle, err := h.parseRequest(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.images.Dispatch(c.Request.Context(), action, bundle)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    result,
	})
}

// SubmitJob queues the request and answers before it is processed.
func (h *ImageHandler) SubmitJob(c *gin.Context) {
	if h.queue == nil {
		h.respondUnavailable(c)
		return
	}

	action, bundle, err := h.parseRequest(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	job, err := h.queue.Submit(c.Request.Context(), action, bundle)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, models.APIResponse{
		Success: true,
		Data:    models.JobAccepted{JobID: job.ID, Status: job.Status},
	})
}

func (h *ImageHandler) GetJob(c *gin.Context) {
	if h.queue == nil {
		h.respondUnavailable(c)
		return
	}

	job, err := h.queue.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    job,
	})
}

// HealthCheck
func (h *ImageHandler) HealthCheck(c *gin.Context) {
	services := make(map[string]string)
	for name, status := range h.sink.HealthCheck(c.Request.Context()) {
		services[name] = status
	}
	if h.queue != nil {
		for name, status := range h.queue.HealthStatus(c.Request.Context()) {
			services[name] = status
		}
	} else {
		services["queue"] = "not configured"
	}

	overall := h.calculateOverallHealth(services)

	statusCode := http.StatusOK
	if overall == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == "healthy",
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Services:  services,
		},
	})
}
