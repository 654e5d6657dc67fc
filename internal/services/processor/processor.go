package processor

import (
	"github.com/phambaophuc/image-resizer/internal/apperror"
	"github.com/phambaophuc/image-resizer/internal/models"
)

// ImageProcessor runs the decode, scale and encode stages. It keeps no
// per-request state and is safe for concurrent use.
type ImageProcessor struct {
	source    *Source
	rescaler  Rescaler
	maxPixels int64
}

// NewImageProcessor refuses resizes whose output exceeds maxPixels; zero disables the limit.
func NewImageProcessor(source *Source, rescaler Rescaler, maxPixels int64) *ImageProcessor {
	return &ImageProcessor{
		source:    source,
		rescaler:  rescaler,
		maxPixels: maxPixels,
	}
}

func (p *ImageProcessor) Decode(req models.ImageRequest) (*Raster, error) {
	return p.source.Decode(req.Payload, req.Kind)
}

// Resize resolves the scale factors for params and applies them to src.
func (p *ImageProcessor) Resize(src *Raster, params models.ResizeParams) (*Raster, error) {
	original := Dimensions{Width: src.Width(), Height: src.Height()}

	factors, err := ResolveScaleFactors(original, params)
	if err != nil {
		return nil, err
	}

	size, err := ScaledSize(original, factors.Width, factors.Height)
	if err != nil {
		return nil, err
	}
	if p.maxPixels > 0 && int64(size.Width)*int64(size.Height) > p.maxPixels {
		return nil, apperror.InvalidDimension("output size %dx%d exceeds the limit of %d pixels",
			size.Width, size.Height, p.maxPixels)
	}

	return p.rescaler.Scale(src, factors.Width, factors.Height)
}

func (p *ImageProcessor) Encode(r *Raster, format models.Format, quality int) ([]byte, error) {
	return Encode(r, format, quality)
}
