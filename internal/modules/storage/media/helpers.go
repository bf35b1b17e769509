package media

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// MaxUploadSize is the inclusive ceiling for a single upload.
const MaxUploadSize = 5 * 1024 * 1024

// allowedTypes is the image MIME allow-list. Anything else is rejected
// before the payload is read.
var allowedTypes = map[string]struct{}{
	"image/jpeg":    {},
	"image/png":     {},
	"image/webp":    {},
	"image/gif":     {},
	"image/svg+xml": {},
}

var (
	nonWordChars = regexp.MustCompile(`[^\w\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// IsAllowedType reports whether the MIME type is on the image allow-list.
func IsAllowedType(contentType string) bool {
	_, ok := allowedTypes[contentType]
	return ok
}

// AllowedTypeList returns the allow-list in stable order for error messages.
func AllowedTypeList() string {
	types := make([]string, 0, len(allowedTypes))
	for t := range allowedTypes {
		types = append(types, t)
	}
	sort.Strings(types)
	return strings.Join(types, ", ")
}

// BuildFilename derives the storage key from the client filename: a
// millisecond timestamp prefix, then the base name with punctuation
// stripped and whitespace collapsed to hyphens. The timestamp keeps
// repeat uploads of the same file from colliding.
func BuildFilename(original string, now time.Time) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)

	clean := nonWordChars.ReplaceAllString(base, "")
	clean = whitespace.ReplaceAllString(strings.TrimSpace(clean), "-")
	if clean == "" {
		clean = "file"
	}

	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), clean, strings.ToLower(ext))
}
