package utils

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// GenerateJobID returns a new identifier for an async processing job.
func GenerateJobID() string {
	return uuid.New().String()
}

// NormalizePath turns a file URI ("file:///data/img.jpg") or a plain path into a
// cleaned filesystem path. Any ".." segment is rejected rather than resolved.
func NormalizePath(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty path")
	}
	if strings.ContainsRune(raw, 0) {
		return "", fmt.Errorf("path contains NUL byte")
	}

	p := raw
	if hasScheme(raw) {
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("invalid URI %q: %w", raw, err)
		}
		if !strings.EqualFold(u.Scheme, "file") {
			return "", fmt.Errorf("unsupported URI scheme %q", u.Scheme)
		}
		if u.Host != "" && u.Host != "localhost" {
			return "", fmt.Errorf("remote file host %q is not supported", u.Host)
		}
		if u.Opaque != "" || u.Path == "" {
			return "", fmt.Errorf("file URI %q has no absolute path", raw)
		}
		p = u.Path
	}

	for _, segment := range strings.FieldsFunc(p, isSeparator) {
		if segment == ".." {
			return "", fmt.Errorf("path %q escapes its directory", raw)
		}
	}

	return filepath.Clean(filepath.FromSlash(p)), nil
}

// ResolveUnder normalizes raw and places it under root, which must be absolute and
// clean. Relative paths are joined to root; absolute paths must already lie inside it.
func ResolveUnder(root, raw string) (string, error) {
	p, err := NormalizePath(raw)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	if !IsWithin(root, p) {
		return "", fmt.Errorf("path %q is outside %s", raw, root)
	}
	return p, nil
}

// IsWithin reports whether p is root itself or lies below it.
func IsWithin(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// ValidateFilename accepts a single path element only.
func ValidateFilename(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("empty filename")
	case name == "." || name == "..":
		return fmt.Errorf("invalid filename %q", name)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0):
		return fmt.Errorf("filename %q must not contain path separators", name)
	}
	return nil
}

func hasScheme(raw string) bool {
	i := strings.Index(raw, ":")
	if i <= 1 {
		// no colon, or a Windows drive letter such as C:
		return false
	}
	for _, r := range raw[:i] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}
