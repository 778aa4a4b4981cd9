package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"

	"github.com/contentdeskhq/contentdesk/internal/models"
)

var allowedExtensions = map[string]string{
	"jpg":  models.MediaKindImage,
	"jpeg": models.MediaKindImage,
	"png":  models.MediaKindImage,
	"gif":  models.MediaKindImage,
	"webp": models.MediaKindImage,
	"mp4":  models.MediaKindVideo,
	"mov":  models.MediaKindVideo,
	"pdf":  models.MediaKindDocument,
}

// readUpload reads a multipart file and sniffs its type. Returns the bytes,
// the detected mime type and the media kind.
func readUpload(file *multipart.FileHeader) ([]byte, string, string, error) {
	content, err := file.Open()
	if err != nil {
		return nil, "", "", fmt.Errorf("error opening file: %w", err)
	}
	defer content.Close()

	fileBytes, err := io.ReadAll(content)
	if err != nil {
		return nil, "", "", fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil {
		return nil, "", "", fmt.Errorf("error detecting file type: %w", err)
	}
	if fileType == types.Unknown {
		return nil, "", "", errors.New("unsupported file type")
	}

	kind, ok := allowedExtensions[fileType.Extension]
	if !ok {
		return nil, "", "", fmt.Errorf("file type %s is not allowed", fileType.Extension)
	}

	return fileBytes, fileType.MIME.Value, kind, nil
}
