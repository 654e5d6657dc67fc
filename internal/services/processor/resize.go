package processor

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/image-resizer/internal/apperror"
	"github.com/phambaophuc/image-resizer/internal/config"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// sizeEpsilon absorbs float error so 300*(100.0/300) floors to 100, not 99.
const sizeEpsilon = 1e-9

// Rescaler scales a raster by independent width and height factors.
type Rescaler interface {
	Scale(src *Raster, widthFactor, heightFactor float64) (*Raster, error)
}

// NewRescaler picks an implementation by its configured name.
func NewRescaler(name string) (Rescaler, error) {
	switch name {
	case config.ResamplerLanczos, "":
		return &ImagingRescaler{filter: imaging.Lanczos}, nil
	case config.ResamplerLinear:
		return &ImagingRescaler{filter: imaging.Linear}, nil
	case config.ResamplerNearest:
		return &ImagingRescaler{filter: imaging.NearestNeighbor}, nil
	case config.ResamplerAffine:
		return &AffineRescaler{interpolator: draw.BiLinear}, nil
	default:
		return nil, fmt.Errorf("unknown resampler %q", name)
	}
}

// ScaledSize is floor(width*widthFactor) x floor(height*heightFactor).
func ScaledSize(original Dimensions, widthFactor, heightFactor float64) (Dimensions, error) {
	w := math.Floor(float64(original.Width)*widthFactor + sizeEpsilon)
	h := math.Floor(float64(original.Height)*heightFactor + sizeEpsilon)

	if !isFinite(w) || !isFinite(h) || w < 1 || h < 1 {
		return Dimensions{}, apperror.InvalidDimension(
			"scaling %dx%d by %vx%v gives an empty image", original.Width, original.Height, widthFactor, heightFactor)
	}
	if w > math.MaxInt32 || h > math.MaxInt32 {
		return Dimensions{}, apperror.InvalidDimension("scaled size %.0fx%.0f is too large", w, h)
	}
	return Dimensions{Width: int(w), Height: int(h)}, nil
}

// ImagingRescaler resamples with github.com/disintegration/imaging.
type ImagingRescaler struct {
	filter imaging.ResampleFilter
}

func (r *ImagingRescaler) Scale(src *Raster, widthFactor, heightFactor float64) (*Raster, error) {
	size, err := ScaledSize(Dimensions{Width: src.Width(), Height: src.Height()}, widthFactor, heightFactor)
	if err != nil {
		return nil, err
	}
	if size.Width == src.Width() && size.Height == src.Height() {
		return src, nil
	}

	return &Raster{Image: imaging.Resize(src.Image, size.Width, size.Height, r.filter)}, nil
}

// AffineRescaler applies a scale matrix to the source, the way a
// matrix-based bitmap transform would.
type AffineRescaler struct {
	interpolator draw.Interpolator
}

func (r *AffineRescaler) Scale(src *Raster, widthFactor, heightFactor float64) (*Raster, error) {
	size, err := ScaledSize(Dimensions{Width: src.Width(), Height: src.Height()}, widthFactor, heightFactor)
	if err != nil {
		return nil, err
	}
	if size.Width == src.Width() && size.Height == src.Height() {
		return src, nil
	}

	bounds := src.Image.Bounds()
	// exact ratios so the floored output is covered edge to edge
	sx := float64(size.Width) / float64(bounds.Dx())
	sy := float64(size.Height) / float64(bounds.Dy())
	matrix := f64.Aff3{
		sx, 0, -sx * float64(bounds.Min.X),
		0, sy, -sy * float64(bounds.Min.Y),
	}

	dst := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	r.interpolator.Transform(dst, matrix, src.Image, bounds, draw.Src, nil)
	return &Raster{Image: dst}, nil
}
