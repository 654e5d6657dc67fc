package processor

import (
	"math"
	"testing"

	"github.com/phambaophuc/image-resizer/internal/apperror"
	"github.com/phambaophuc/image-resizer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScaleFactors(t *testing.T) {
	tests := []struct {
		name     string
		original Dimensions
		params   models.ResizeParams
		want     ScaleFactors
	}{
		{
			name:     "factor mode uses raw values",
			original: Dimensions{Width: 200, Height: 100},
			params:   models.ResizeParams{Mode: models.ModeScaleFactor, TargetWidth: 0.5, TargetHeight: 0.25},
			want:     ScaleFactors{Width: 0.5, Height: 0.25},
		},
		{
			name:     "factor mode may enlarge",
			original: Dimensions{Width: 10, Height: 10},
			params:   models.ResizeParams{Mode: models.ModeScaleFactor, TargetWidth: 3, TargetHeight: 2},
			want:     ScaleFactors{Width: 3, Height: 2},
		},
		{
			name:     "min pixel binds on height",
			original: Dimensions{Width: 400, Height: 200},
			params:   models.ResizeParams{Mode: models.ModeMinPixel, TargetWidth: 100, TargetHeight: 100},
			want:     ScaleFactors{Width: 0.5, Height: 0.5},
		},
		{
			name:     "min pixel binds on width",
			original: Dimensions{Width: 200, Height: 400},
			params:   models.ResizeParams{Mode: models.ModeMinPixel, TargetWidth: 100, TargetHeight: 100},
			want:     ScaleFactors{Width: 0.5, Height: 0.5},
		},
		{
			name:     "min pixel never upscales",
			original: Dimensions{Width: 50, Height: 40},
			params:   models.ResizeParams{Mode: models.ModeMinPixel, TargetWidth: 100, TargetHeight: 100},
			want:     ScaleFactors{Width: 1, Height: 1},
		},
		{
			name:     "min pixel source shorter than target height",
			original: Dimensions{Width: 200, Height: 50},
			params:   models.ResizeParams{Mode: models.ModeMinPixel, TargetWidth: 100, TargetHeight: 100},
			want:     ScaleFactors{Width: 1, Height: 1},
		},
		{
			name:     "max pixel fits width",
			original: Dimensions{Width: 400, Height: 200},
			params:   models.ResizeParams{Mode: models.ModeMaxPixel, TargetWidth: 100, TargetHeight: 100},
			want:     ScaleFactors{Width: 0.25, Height: 0.25},
		},
		{
			name:     "max pixel fits height",
			original: Dimensions{Width: 200, Height: 400},
			params:   models.ResizeParams{Mode: models.ModeMaxPixel, TargetWidth: 100, TargetHeight: 100},
			want:     ScaleFactors{Width: 0.25, Height: 0.25},
		},
		{
			name:     "max pixel zero width target uses height",
			original: Dimensions{Width: 400, Height: 200},
			params:   models.ResizeParams{Mode: models.ModeMaxPixel, TargetWidth: 0, TargetHeight: 100},
			want:     ScaleFactors{Width: 0.5, Height: 0.5},
		},
		{
			name:     "max pixel zero height target uses width",
			original: Dimensions{Width: 400, Height: 200},
			params:   models.ResizeParams{Mode: models.ModeMaxPixel, TargetWidth: 100, TargetHeight: 0},
			want:     ScaleFactors{Width: 0.25, Height: 0.25},
		},
		{
			name:     "density applied when result stays below one",
			original: Dimensions{Width: 100, Height: 100},
			params: models.ResizeParams{Mode: models.ModeScaleFactor, TargetWidth: 0.3, TargetHeight: 0.3,
				CompensateDensity: true, DeviceDensity: 2},
			want: ScaleFactors{Width: 0.6, Height: 0.6},
		},
		{
			name:     "density guard forces one",
			original: Dimensions{Width: 100, Height: 100},
			params: models.ResizeParams{Mode: models.ModeScaleFactor, TargetWidth: 0.6, TargetHeight: 0.6,
				CompensateDensity: true, DeviceDensity: 2},
			want: ScaleFactors{Width: 1, Height: 1},
		},
		{
			name:     "density guard checks both factors",
			original: Dimensions{Width: 100, Height: 100},
			params: models.ResizeParams{Mode: models.ModeScaleFactor, TargetWidth: 0.2, TargetHeight: 0.5,
				CompensateDensity: true, DeviceDensity: 2},
			want: ScaleFactors{Width: 1, Height: 1},
		},
		{
			name:     "density of one is ignored",
			original: Dimensions{Width: 100, Height: 100},
			params: models.ResizeParams{Mode: models.ModeScaleFactor, TargetWidth: 0.6, TargetHeight: 0.6,
				CompensateDensity: true, DeviceDensity: 1},
			want: ScaleFactors{Width: 0.6, Height: 0.6},
		},
		{
			name:     "density ignored when not requested",
			original: Dimensions{Width: 100, Height: 100},
			params: models.ResizeParams{Mode: models.ModeScaleFactor, TargetWidth: 0.6, TargetHeight: 0.6,
				DeviceDensity: 3},
			want: ScaleFactors{Width: 0.6, Height: 0.6},
		},
		{
			name:     "density after max pixel",
			original: Dimensions{Width: 1000, Height: 500},
			params: models.ResizeParams{Mode: models.ModeMaxPixel, TargetWidth: 200, TargetHeight: 200,
				CompensateDensity: true, DeviceDensity: 2},
			want: ScaleFactors{Width: 0.4, Height: 0.4},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveScaleFactors(tc.original, tc.params)
			require.NoError(t, err)
			assert.InDelta(t, tc.want.Width, got.Width, 1e-12)
			assert.InDelta(t, tc.want.Height, got.Height, 1e-12)
		})
	}
}

func TestResolveScaleFactorsRejectsInvalidDimensions(t *testing.T) {
	tests := []struct {
		name     string
		original Dimensions
		params   models.ResizeParams
	}{
		{
			name:     "zero width original",
			original: Dimensions{Width: 0, Height: 100},
			params:   models.ResizeParams{Mode: models.ModeMinPixel, TargetWidth: 10, TargetHeight: 10},
		},
		{
			name:     "zero height original",
			original: Dimensions{Width: 100, Height: 0},
			params:   models.ResizeParams{Mode: models.ModeMaxPixel, TargetWidth: 10, TargetHeight: 10},
		},
		{
			name:     "zero factor",
			original: Dimensions{Width: 100, Height: 100},
			params:   models.ResizeParams{Mode: models.ModeScaleFactor, TargetWidth: 0, TargetHeight: 1},
		},
		{
			name:     "negative factor",
			original: Dimensions{Width: 100, Height: 100},
			params:   models.ResizeParams{Mode: models.ModeScaleFactor, TargetWidth: -0.5, TargetHeight: 0.5},
		},
		{
			name:     "nan target",
			original: Dimensions{Width: 100, Height: 100},
			params:   models.ResizeParams{Mode: models.ModeScaleFactor, TargetWidth: math.NaN(), TargetHeight: 0.5},
		},
		{
			name:     "infinite target",
			original: Dimensions{Width: 100, Height: 100},
			params:   models.ResizeParams{Mode: models.ModeMaxPixel, TargetWidth: math.Inf(1), TargetHeight: 50},
		},
		{
			name:     "max pixel both targets zero",
			original: Dimensions{Width: 100, Height: 100},
			params:   models.ResizeParams{Mode: models.ModeMaxPixel},
		},
		{
			name:     "negative pixel target",
			original: Dimensions{Width: 100, Height: 100},
			params:   models.ResizeParams{Mode: models.ModeMinPixel, TargetWidth: -10, TargetHeight: 50},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveScaleFactors(tc.original, tc.params)
			require.Error(t, err)
			assert.Equal(t, apperror.KindInvalidDimension, apperror.KindOf(err))
		})
	}
}

func TestResolveScaleFactorsUnknownMode(t *testing.T) {
	_, err := ResolveScaleFactors(Dimensions{Width: 10, Height: 10}, models.ResizeParams{Mode: "cropResize", TargetWidth: 1, TargetHeight: 1})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestMaxPixelNeverExceedsTarget(t *testing.T) {
	targets := []Dimensions{{100, 100}, {640, 480}, {333, 77}, {1, 50}}
	originals := []Dimensions{{4000, 3000}, {1023, 767}, {300, 300}, {101, 2999}, {7, 13}}

	for _, target := range targets {
		for _, original := range originals {
			params := models.ResizeParams{Mode: models.ModeMaxPixel,
				TargetWidth: float64(target.Width), TargetHeight: float64(target.Height)}

			factors, err := ResolveScaleFactors(original, params)
			require.NoError(t, err)
			assert.Equal(t, factors.Width, factors.Height, "aspect ratio for %v -> %v", original, target)

			size, err := ScaledSize(original, factors.Width, factors.Height)
			if err != nil {
				// a 1px target can legitimately collapse the other side
				continue
			}
			assert.LessOrEqual(t, size.Width, target.Width, "%v -> %v", original, target)
			assert.LessOrEqual(t, size.Height, target.Height, "%v -> %v", original, target)
		}
	}
}

func TestMaxPixelIsIdempotent(t *testing.T) {
	params := models.ResizeParams{Mode: models.ModeMaxPixel, TargetWidth: 300, TargetHeight: 300}

	first, err := ResolveScaleFactors(Dimensions{Width: 1200, Height: 900}, params)
	require.NoError(t, err)
	fitted, err := ScaledSize(Dimensions{Width: 1200, Height: 900}, first.Width, first.Height)
	require.NoError(t, err)
	assert.Equal(t, Dimensions{Width: 300, Height: 225}, fitted)

	second, err := ResolveScaleFactors(fitted, params)
	require.NoError(t, err)
	assert.Equal(t, ScaleFactors{Width: 1, Height: 1}, second)
}

func TestMinPixelKeepsBindingDimension(t *testing.T) {
	targets := []Dimensions{{100, 100}, {640, 480}, {333, 77}}
	originals := []Dimensions{{4000, 3000}, {1023, 767}, {700, 2999}, {1000, 1000}}

	for _, target := range targets {
		for _, original := range originals {
			params := models.ResizeParams{Mode: models.ModeMinPixel,
				TargetWidth: float64(target.Width), TargetHeight: float64(target.Height)}

			factors, err := ResolveScaleFactors(original, params)
			require.NoError(t, err)
			assert.Equal(t, factors.Width, factors.Height)
			assert.LessOrEqual(t, factors.Width, 1.0)

			size, err := ScaledSize(original, factors.Width, factors.Height)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, size.Width, target.Width, "%v -> %v", original, target)
			assert.GreaterOrEqual(t, size.Height, target.Height, "%v -> %v", original, target)
		}
	}
}
