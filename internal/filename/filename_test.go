package filename

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveKeepsExistingExtension(t *testing.T) {
	r := Resolve("report.pdf", "application/pdf")
	assert.Equal(t, "report.pdf", r.Working)
	assert.Equal(t, "report.pdf", r.Original)
	assert.Equal(t, "pdf", r.Extension)
}

func TestResolveGuessesExtensionFromContentType(t *testing.T) {
	r := Resolve("report", "application/pdf")
	assert.Equal(t, "report.pdf", r.Working)
	// Original keeps the name exactly as uploaded.
	assert.Equal(t, "report", r.Original)
	assert.Equal(t, "pdf", r.Extension)
}

func TestResolveUnknownContentType(t *testing.T) {
	// Not an error: the name just stays extension-less.
	r := Resolve("blob", "application/x-notevault-custom")
	assert.Equal(t, "blob", r.Working)
	assert.Equal(t, "blob", r.Original)
	assert.Equal(t, "", r.Extension)
}

func TestResolveEmptyName(t *testing.T) {
	r := Resolve("", "image/png")
	assert.Equal(t, "upload.png", r.Working)
	assert.Equal(t, "upload", r.Original)
	assert.Equal(t, "png", r.Extension)
}

func TestGuessExtensionPreferred(t *testing.T) {
	assert.Equal(t, ".jpg", GuessExtension("image/jpeg"))
	assert.Equal(t, ".docx", GuessExtension("application/vnd.openxmlformats-officedocument.wordprocessingml.document"))
	assert.Equal(t, "", GuessExtension("application/octet-stream"))
	assert.Equal(t, "", GuessExtension(""))
	// Parameters on the media type do not break the lookup.
	assert.Equal(t, ".txt", GuessExtension("text/plain; charset=utf-8"))
}

func TestMissing(t *testing.T) {
	ext, ok := Missing("report.pdf", "pdf", "application/pdf")
	assert.False(t, ok, "names with extensions need no correction")
	assert.Equal(t, "", ext)

	ext, ok = Missing("report", "pdf", "")
	assert.True(t, ok)
	assert.Equal(t, ".pdf", ext)

	// Recorded extension wins over a content-type guess.
	ext, ok = Missing("report", "txt", "application/pdf")
	assert.True(t, ok)
	assert.Equal(t, ".txt", ext)

	ext, ok = Missing("report", "", "application/pdf")
	assert.True(t, ok)
	assert.Equal(t, ".pdf", ext)

	_, ok = Missing("report", "", "application/x-unknown")
	assert.False(t, ok)
}
