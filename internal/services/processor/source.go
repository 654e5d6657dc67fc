package processor

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/phambaophuc/image-resizer/internal/apperror"
	"github.com/phambaophuc/image-resizer/internal/models"
	"github.com/phambaophuc/image-resizer/pkg/utils"
)

// Raster is a decoded image owned by whichever pipeline stage holds it.
type Raster struct {
	Image image.Image
}

func (r *Raster) Width() int {
	return r.Image.Bounds().Dx()
}

func (r *Raster) Height() int {
	return r.Image.Bounds().Dy()
}

// Source decodes request payloads into rasters. File references are only read
// from below root.
type Source struct {
	maxBytes int64
	root     string
}

// NewSource returns a Source that refuses payloads above maxBytes; zero disables the limit.
func NewSource(maxBytes int64, root string) (*Source, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve image root %q: %w", root, err)
	}
	return &Source{maxBytes: maxBytes, root: absRoot}, nil
}

func (s *Source) Decode(payload string, kind models.PayloadKind) (*Raster, error) {
	var (
		data []byte
		err  error
	)

	switch kind {
	case models.KindEmbeddedEncoded:
		data, err = s.decodeEmbedded(payload)
	case models.KindFileReference:
		data, err = s.readFile(payload)
	default:
		return nil, apperror.Validation("unsupported imageDataType %q", kind)
	}
	if err != nil {
		return nil, err
	}

	return decodeRaster(data)
}

func (s *Source) decodeEmbedded(payload string) ([]byte, error) {
	encoded := payload
	if strings.HasPrefix(encoded, "data:") {
		if i := strings.Index(encoded, ";base64,"); i >= 0 {
			encoded = encoded[i+len(";base64,"):]
		}
	}
	// line-wrapped base64 is common from mobile encoders
	encoded = strings.Join(strings.Fields(encoded), "")
	if encoded == "" {
		return nil, apperror.Decode(nil, "empty image payload")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		var rawErr error
		data, rawErr = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
		if rawErr != nil {
			return nil, apperror.Decode(err, "failed to decode base64 payload")
		}
	}

	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, apperror.Validation("image size %d exceeds maximum allowed size %d", len(data), s.maxBytes)
	}
	return data, nil
}

func (s *Source) readFile(payload string) ([]byte, error) {
	path, err := utils.ResolveUnder(s.root, payload)
	if err != nil {
		return nil, apperror.Path(err, "invalid image location")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, apperror.NotFound(err, "image file %s could not be opened", path)
	}
	if info.IsDir() {
		return nil, apperror.NotFound(nil, "image file %s is a directory", path)
	}
	if err := s.checkLinks(path); err != nil {
		return nil, err
	}
	if s.maxBytes > 0 && info.Size() > s.maxBytes {
		return nil, apperror.Validation("file size %d exceeds maximum allowed size %d", info.Size(), s.maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperror.NotFound(err, "image file %s could not be read", path)
	}
	return data, nil
}

// checkLinks refuses files that only lie below root before symlinks are resolved.
func (s *Source) checkLinks(path string) error {
	realRoot, err := filepath.EvalSymlinks(s.root)
	if err != nil {
		return apperror.NotFound(err, "image root %s is not available", s.root)
	}
	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return apperror.NotFound(err, "image file %s could not be resolved", path)
	}
	if !utils.IsWithin(realRoot, realPath) {
		return apperror.Path(nil, "image file %s resolves outside %s", path, s.root)
	}
	return nil
}

func decodeRaster(data []byte) (*Raster, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, apperror.Decode(err, "unrecognized image format")
		}
		return nil, apperror.Decode(err, "failed to decode image")
	}

	switch format {
	case "jpeg", "png":
	default:
		return nil, apperror.Decode(nil, "unsupported image format %q", format)
	}

	return &Raster{Image: img}, nil
}
