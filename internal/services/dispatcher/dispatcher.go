package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phambaophuc/image-resizer/internal/apperror"
	"github.com/phambaophuc/image-resizer/internal/config"
	"github.com/phambaophuc/image-resizer/internal/models"
	"github.com/phambaophuc/image-resizer/internal/services/processor"
	"github.com/phambaophuc/image-resizer/internal/services/storage"
	"go.uber.org/zap"
)

// Dispatcher validates request bundles and routes them to the image pipeline.
// It holds no per-request state and is safe for concurrent use.
type Dispatcher struct {
	processor *processor.ImageProcessor
	sink      storage.Sink
	defaults  config.ImageDefaults
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewDispatcher(
	processor *processor.ImageProcessor,
	sink storage.Sink,
	defaults config.ImageDefaults,
	logger *zap.Logger,
) *Dispatcher {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Dispatcher{
		processor: processor,
		sink:      sink,
		defaults:  defaults,
		validate:  validate,
		logger:    logger,
	}
}

// Dispatch runs one request. It returns either a result or an *apperror.Error,
// never both.
func (d *Dispatcher) Dispatch(ctx context.Context, action models.Action, bundle models.Bundle) (*models.ResizeResult, error) {
	start := time.Now()

	result, req, err := d.dispatch(ctx, action, bundle)

	fields := []zap.Field{
		zap.String("action", string(action)),
		zap.String("kind", string(req.Kind)),
		zap.String("format", string(req.Format)),
		zap.Duration("latency", time.Since(start)),
	}
	if err != nil {
		d.logger.Warn("Image request failed",
			append(fields, zap.String("error_kind", string(apperror.KindOf(err))), zap.Error(err))...)
		return nil, err
	}

	d.logger.Info("Image request handled",
		append(fields, zap.Int("width", result.Width), zap.Int("height", result.Height),
			zap.Bool("stored", result.Filename != ""))...)
	return result, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, action models.Action, bundle models.Bundle) (*models.ResizeResult, models.ImageRequest, error) {
	if !action.Valid() {
		return nil, models.ImageRequest{}, apperror.UnknownAction(string(action))
	}
	if err := d.validateBundle(bundle); err != nil {
		return nil, models.ImageRequest{}, err
	}

	req := d.buildRequest(action, bundle)

	var (
		result *models.ResizeResult
		err    error
	)
	switch action {
	case models.ActionMeasure:
		result, err = d.measure(req)
	case models.ActionResize:
		result, err = d.resize(ctx, req, bundle)
	case models.ActionStore:
		result, err = d.store(ctx, req, bundle)
	}
	return result, req, err
}

func (d *Dispatcher) measure(req models.ImageRequest) (*models.ResizeResult, error) {
	raster, err := d.processor.Decode(req)
	if err != nil {
		return nil, err
	}
	return &models.ResizeResult{Width: raster.Width(), Height: raster.Height()}, nil
}

func (d *Dispatcher) resize(ctx context.Context, req models.ImageRequest, bundle models.Bundle) (*models.ResizeResult, error) {
	params, err := d.resizeParams(bundle)
	if err != nil {
		return nil, err
	}

	raster, err := d.processor.Decode(req)
	if err != nil {
		return nil, err
	}

	resized, err := d.processor.Resize(raster, params)
	if err != nil {
		return nil, err
	}

	if params.Persist {
		return d.persist(ctx, resized, req.Format, params.Quality, *params.Destination)
	}

	data, err := d.processor.Encode(resized, req.Format, params.Quality)
	if err != nil {
		return nil, err
	}

	return &models.ResizeResult{
		Width:     resized.Width(),
		Height:    resized.Height(),
		ImageData: processor.EncodeBase64(data),
	}, nil
}

func (d *Dispatcher) store(ctx context.Context, req models.ImageRequest, bundle models.Bundle) (*models.ResizeResult, error) {
	dest, err := destination(bundle)
	if err != nil {
		return nil, err
	}

	raster, err := d.processor.Decode(req)
	if err != nil {
		return nil, err
	}

	return d.persist(ctx, raster, req.Format, d.quality(bundle), dest)
}

func (d *Dispatcher) persist(ctx context.Context, raster *processor.Raster, format models.Format, quality int, dest models.Destination) (*models.ResizeResult, error) {
	data, err := d.processor.Encode(raster, format, quality)
	if err != nil {
		return nil, err
	}

	if err := d.sink.Store(ctx, data, format, dest.Directory, dest.Filename); err != nil {
		return nil, err
	}

	return &models.ResizeResult{
		Width:    raster.Width(),
		Height:   raster.Height(),
		Filename: dest.Filename,
	}, nil
}

func (d *Dispatcher) buildRequest(action models.Action, bundle models.Bundle) models.ImageRequest {
	req := models.ImageRequest{
		Payload:   bundle.Data,
		Kind:      d.defaults.ImageDataType,
		Format:    d.defaults.Format,
		Operation: action,
	}
	if bundle.ImageDataType != "" {
		req.Kind = models.PayloadKind(bundle.ImageDataType)
	}
	if bundle.Format != "" {
		req.Format = models.Format(bundle.Format)
	}
	return req
}

func (d *Dispatcher) resizeParams(bundle models.Bundle) (models.ResizeParams, error) {
	if bundle.Width == nil || bundle.Height == nil {
		return models.ResizeParams{}, apperror.Validation("width and height are required for resizeImage")
	}

	params := models.ResizeParams{
		Mode:              d.defaults.ResizeType,
		TargetWidth:       *bundle.Width,
		TargetHeight:      *bundle.Height,
		CompensateDensity: bundle.PixelDensity,
		DeviceDensity:     d.defaults.DeviceDensity,
		Quality:           d.quality(bundle),
		Persist:           bundle.StoreImage,
	}
	if bundle.ResizeType != "" {
		params.Mode = models.ResizeMode(bundle.ResizeType)
	}
	if bundle.DeviceDensity != nil {
		params.DeviceDensity = *bundle.DeviceDensity
	}

	if params.Persist {
		dest, err := destination(bundle)
		if err != nil {
			return models.ResizeParams{}, err
		}
		params.Destination = &dest
	}
	return params, nil
}

// quality treats 0 like an absent field.
func (d *Dispatcher) quality(bundle models.Bundle) int {
	if bundle.Quality != nil && *bundle.Quality > 0 {
		return *bundle.Quality
	}
	return d.defaults.Quality
}

func destination(bundle models.Bundle) (models.Destination, error) {
	var missing []string
	if bundle.Directory == "" {
		missing = append(missing, "directory")
	}
	if bundle.Filename == "" {
		missing = append(missing, "filename")
	}
	if len(missing) > 0 {
		return models.Destination{}, apperror.Validation("%s required when storing an image", strings.Join(missing, " and "))
	}
	return models.Destination{Directory: bundle.Directory, Filename: bundle.Filename}, nil
}

func (d *Dispatcher) validateBundle(bundle models.Bundle) error {
	err := d.validate.Struct(bundle)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperror.Validation("invalid request: %v", err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fieldMessage(fe))
	}
	return apperror.Validation("%s", strings.Join(messages, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", fe.Field(), fe.Param(), fe.Value())
	case "min", "max", "gt":
		return fmt.Sprintf("%s must be %s %s", fe.Field(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
