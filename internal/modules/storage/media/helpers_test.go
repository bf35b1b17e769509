package media

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildFilename(t *testing.T) {
	now := time.Date(2025, 5, 20, 9, 30, 0, 0, time.UTC)

	got := BuildFilename("My Photo (final).PNG", now)
	assert.Regexp(t, regexp.MustCompile(`^\d+-[\w-]+\.png$`), got)
	assert.Contains(t, got, "My-Photo-final")

	got = BuildFilename("screenshot.png", now)
	assert.Regexp(t, `^\d+-screenshot\.png$`, got)

	// Nothing usable left after sanitizing.
	got = BuildFilename("!!!.png", now)
	assert.Regexp(t, `^\d+-file\.png$`, got)
}

func TestBuildFilenameTimestampPrefix(t *testing.T) {
	now := time.UnixMilli(1747733400000)
	got := BuildFilename("a.jpg", now)
	assert.Equal(t, "1747733400000-a.jpg", got)
}

func TestIsAllowedType(t *testing.T) {
	for _, typ := range []string{"image/jpeg", "image/png", "image/webp", "image/gif", "image/svg+xml"} {
		assert.True(t, IsAllowedType(typ), typ)
	}
	for _, typ := range []string{"application/pdf", "text/html", "image/tiff", "video/mp4", ""} {
		assert.False(t, IsAllowedType(typ), typ)
	}
}

func TestAllowedTypeListIsStable(t *testing.T) {
	list := AllowedTypeList()
	assert.Equal(t, "image/gif, image/jpeg, image/png, image/svg+xml, image/webp", list)
}

func TestMaxUploadSize(t *testing.T) {
	assert.Equal(t, int64(5*1024*1024), int64(MaxUploadSize))
}
