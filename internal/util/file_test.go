package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestValidateMimeType(t *testing.T) {
	mime, err := ValidateMimeType(bytes.NewReader(pngHeader), []string{MimeImage})
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	_, err = ValidateMimeType(bytes.NewReader(pngHeader), []string{MimePDF})
	assert.Error(t, err)

	mime, err = ValidateMimeType(bytes.NewReader([]byte("%PDF-1.7 sample")), []string{MimePDF})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mime)
}

func TestMimeClassifiers(t *testing.T) {
	assert.True(t, IsImage("image/png"))
	assert.False(t, IsImage("application/pdf"))

	assert.True(t, IsVideo("video/mp4"))
	assert.False(t, IsVideo("image/gif"))

	assert.True(t, IsDocument("application/pdf"))
	assert.True(t, IsDocument("application/zip"), "docx files sniff as zip")
	assert.False(t, IsDocument("image/png"))
}

func TestHasAllowedExtension(t *testing.T) {
	assert.True(t, HasAllowedExtension(".png", AllowedImageExtensions))
	assert.False(t, HasAllowedExtension(".exe", AllowedImageExtensions))
	assert.True(t, HasAllowedExtension(".docx", AllowedDocumentExtensions))
	assert.True(t, HasAllowedExtension(".mp4", AllowedVideoExtensions))
	assert.False(t, HasAllowedExtension(".mp4", AllowedDocumentExtensions))
}
