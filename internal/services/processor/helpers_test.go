package processor

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleImage(width, height int) *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			im.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 13), B: uint8((x + y) * 3), A: 255})
		}
	}
	return im
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func pngBase64(t *testing.T, width, height int) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString(pngBytes(t, sampleImage(width, height)))
}

func newTestSource(t *testing.T, maxBytes int64, root string) *Source {
	t.Helper()
	source, err := NewSource(maxBytes, root)
	require.NoError(t, err)
	return source
}
