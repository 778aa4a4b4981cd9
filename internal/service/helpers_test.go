package service

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentdeskhq/contentdesk/internal/models"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["file"][0]
}

var pngHeader = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d}

func TestReadUploadSniffsImages(t *testing.T) {
	fileBytes, mime, kind, err := readUpload(fileHeader(t, "a.png", pngHeader))
	require.NoError(t, err)

	assert.Equal(t, pngHeader, fileBytes)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, models.MediaKindImage, kind)
}

func TestReadUploadRejectsUnknownContent(t *testing.T) {
	_, _, _, err := readUpload(fileHeader(t, "notes.txt", []byte("just some text")))
	require.Error(t, err)
	assert.Equal(t, "unsupported file type", err.Error())
}
