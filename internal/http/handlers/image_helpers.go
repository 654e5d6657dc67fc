package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-resizer/internal/apperror"
	"github.com/phambaophuc/image-resizer/internal/models"
	"github.com/phambaophuc/image-resizer/internal/services/queue"
	"go.uber.org/zap"
)

// === REQUEST PARSING ===

func (h *ImageHandler) parseRequest(c *gin.Context) (models.Action, models.Bundle, error) {
	action := models.Action(c.Param(actionParamKey))
	if !action.Valid() {
		return "", models.Bundle{}, apperror.UnknownAction(string(action))
	}

	var bundle models.Bundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		return "", models.Bundle{}, apperror.Validation("invalid request body: %v", err)
	}

	return action, bundle, nil
}

// === RESPONSE HANDLING ===

func (h *ImageHandler) respondError(c *gin.Context, err error) {
	status := apperror.StatusOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}

	c.JSON(status, models.APIResponse{
		Success: false,
		Error:   err.Error(),
		Kind:    string(apperror.KindOf(err)),
	})
}

func (h *ImageHandler) respondJobError(c *gin.Context, err error) {
	if errors.Is(err, queue.ErrJobNotFound) {
		c.JSON(http.StatusNotFound, models.APIResponse{
			Success: false,
			Error:   err.Error(),
			Kind:    string(apperror.KindNotFound),
		})
		return
	}

	h.logger.Error("Failed to load job", zap.String("job_id", c.Param("id")), zap.Error(err))
	c.JSON(http.StatusInternalServerError, models.APIResponse{
		Success: false,
		Error:   "failed to load job",
	})
}

func (h *ImageHandler) respondUnavailable(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, models.APIResponse{
		Success: false,
		Error:   "job queue is not available",
	})
}

// === UTILITY METHODS ===

func (h *ImageHandler) calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != "healthy" && status != "not configured" {
			return "unhealthy"
		}
	}
	return "healthy"
}
