package processor

import (
	"math"

	"github.com/phambaophuc/image-resizer/internal/apperror"
	"github.com/phambaophuc/image-resizer/internal/models"
)

// Dimensions is a pixel size.
type Dimensions struct {
	Width  int
	Height int
}

// ScaleFactors are applied independently to width and height; 1 is a no-op.
type ScaleFactors struct {
	Width  float64
	Height float64
}

// ResolveScaleFactors works out the factors for the given resize mode. Pixel modes
// keep the aspect ratio of the original. Density compensation is only applied when
// it keeps both factors below 1; otherwise the image is left at its original size.
func ResolveScaleFactors(original Dimensions, params models.ResizeParams) (ScaleFactors, error) {
	if original.Width <= 0 || original.Height <= 0 {
		return ScaleFactors{}, apperror.InvalidDimension("original image has invalid size %dx%d", original.Width, original.Height)
	}
	if !isFinite(params.TargetWidth) || !isFinite(params.TargetHeight) {
		return ScaleFactors{}, apperror.InvalidDimension("width and height must be finite numbers")
	}

	var factors ScaleFactors
	switch params.Mode {
	case models.ModeScaleFactor:
		factors = ScaleFactors{Width: params.TargetWidth, Height: params.TargetHeight}
	case models.ModeMinPixel:
		if params.TargetWidth < 0 || params.TargetHeight < 0 {
			return ScaleFactors{}, apperror.InvalidDimension("pixel targets must not be negative")
		}
		factors = minPixelFactors(original, params.TargetWidth, params.TargetHeight)
	case models.ModeMaxPixel:
		if params.TargetWidth < 0 || params.TargetHeight < 0 {
			return ScaleFactors{}, apperror.InvalidDimension("pixel targets must not be negative")
		}
		factors = maxPixelFactors(original, params.TargetWidth, params.TargetHeight)
	default:
		return ScaleFactors{}, apperror.Validation("unsupported resizeType %q", params.Mode)
	}

	if params.CompensateDensity {
		factors = compensateDensity(factors, params.DeviceDensity)
	}

	if !isFinite(factors.Width) || !isFinite(factors.Height) || factors.Width <= 0 || factors.Height <= 0 {
		return ScaleFactors{}, apperror.InvalidDimension("resolved scale factors %vx%v are not positive", factors.Width, factors.Height)
	}
	return factors, nil
}

func minPixelFactors(original Dimensions, targetWidth, targetHeight float64) ScaleFactors {
	wf := targetWidth / float64(original.Width)
	hf := targetHeight / float64(original.Height)

	switch {
	case wf > hf && wf <= 1.0:
		return ScaleFactors{Width: wf, Height: wf}
	case hf <= 1.0:
		return ScaleFactors{Width: hf, Height: hf}
	default:
		// already smaller than both targets, never upscale
		return ScaleFactors{Width: 1, Height: 1}
	}
}

func maxPixelFactors(original Dimensions, targetWidth, targetHeight float64) ScaleFactors {
	wf := targetWidth / float64(original.Width)
	hf := targetHeight / float64(original.Height)

	switch {
	case wf == 0:
		return ScaleFactors{Width: hf, Height: hf}
	case hf == 0:
		return ScaleFactors{Width: wf, Height: wf}
	case wf > hf:
		// fit height
		return ScaleFactors{Width: hf, Height: hf}
	default:
		// fit width
		return ScaleFactors{Width: wf, Height: wf}
	}
}

func compensateDensity(factors ScaleFactors, density float64) ScaleFactors {
	if density <= 1 {
		return factors
	}
	if factors.Width*density < 1.0 && factors.Height*density < 1.0 {
		return ScaleFactors{Width: factors.Width * density, Height: factors.Height * density}
	}
	return ScaleFactors{Width: 1, Height: 1}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
