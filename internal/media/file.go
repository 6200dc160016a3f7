package media

import (
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-vinted/models"
)

// preparedFile is an image whose content type was sniffed from its bytes.
type preparedFile struct {
	name        string
	ext         string
	contentType string
	data        []byte
}

// prepare checks that file holds an image and picks a fresh object name.
// The declared content type is ignored; the bytes decide.
func prepare(file models.ImageFile) (preparedFile, error) {
	if file.IsEmpty() {
		return preparedFile{}, ErrEmptyFile
	}

	contentType := http.DetectContentType(file.Data)
	if !strings.HasPrefix(contentType, "image/") {
		return preparedFile{}, fmt.Errorf("%w: detected %s", ErrNotAnImage, contentType)
	}

	return preparedFile{
		name:        uuid.NewString(),
		ext:         extension(file.Filename, contentType),
		contentType: contentType,
		data:        file.Data,
	}, nil
}

func extension(filename, contentType string) string {
	if ext := strings.ToLower(path.Ext(filename)); ext != "" && len(ext) <= 5 {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
