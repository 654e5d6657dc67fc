package processor

import (
	"bytes"
	"encoding/base64"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/phambaophuc/image-resizer/internal/apperror"
	"github.com/phambaophuc/image-resizer/internal/models"
)

// Encode compresses the raster. Quality drives JPEG; for PNG it only selects a
// compression level, the output is lossless either way.
func Encode(r *Raster, format models.Format, quality int) ([]byte, error) {
	buffer := &bytes.Buffer{}
	if err := encodeImage(buffer, r, format, quality); err != nil {
		return nil, apperror.IO(err, "failed to encode image as %s", format)
	}
	return buffer.Bytes(), nil
}

// EncodeBase64 is the text form used for inline results.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func encodeImage(w io.Writer, r *Raster, format models.Format, quality int) error {
	switch format {
	case models.FormatPNG:
		encoder := &png.Encoder{CompressionLevel: pngCompression(quality)}
		return encoder.Encode(w, r.Image)
	default:
		return jpeg.Encode(w, r.Image, &jpeg.Options{Quality: min(100, max(1, quality))})
	}
}

func pngCompression(quality int) png.CompressionLevel {
	switch {
	case quality < 34:
		return png.BestSpeed
	case quality < 67:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}
