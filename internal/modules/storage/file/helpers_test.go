package file

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFileName(t *testing.T) {
	name := buildFileName("photo.PNG")
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.Len(t, name, 18+len(".png"))

	assert.True(t, strings.HasSuffix(buildFileName("archive"), ".dat"))
	assert.True(t, strings.HasSuffix(buildFileName("weird.extension-way-too-long"), ".dat"))

	assert.NotEqual(t, buildFileName("a.jpg"), buildFileName("a.jpg"))
}

func TestValidateFile(t *testing.T) {
	assert.NoError(t, validateFile("a.jpg", 1024, "jpg,png", 5))
	assert.NoError(t, validateFile("a.JPG", 1024, ".jpg, .png", 5))
	assert.NoError(t, validateFile("anything.bin", 1024, "", 5))
	assert.NoError(t, validateFile("huge.jpg", 100<<20, "jpg", 0))

	assert.Error(t, validateFile("a.exe", 1024, "jpg,png", 5))
	assert.Error(t, validateFile("noext", 1024, "jpg", 5))
	assert.Error(t, validateFile("big.jpg", 6<<20, "jpg", 5))
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "image/webp", detectContentType("a.bin", nil, "image/webp"))
	assert.Contains(t, detectContentType("a.html", nil, ""), "text/html")
	assert.Equal(t, "text/html; charset=utf-8", detectContentType("a.unknownext", []byte("<html><body>x</body></html>"), ""))
	assert.Equal(t, "application/octet-stream", detectContentType("a.unknownext", nil, ""))
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "photo_1.png", safeName("photo_1.png"))
	assert.Equal(t, "photo.png", safeName("/uploads/photo.png"))
	assert.Equal(t, "", safeName("pho to.png"))
	assert.Equal(t, "", safeName(""))
	assert.Equal(t, "", safeName("."))
}
