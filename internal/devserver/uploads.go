package devserver

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// UploadsPrefix is the URL path uploaded images are served from.
const UploadsPrefix = "/uploads"

// maxImageSize bounds a single product image.
const maxImageSize = 5 << 20

// Uploads stores product images on disk under dir.
type Uploads struct {
	dir string
}

func NewUploads(dir string) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Uploads{dir: dir}, nil
}

func (u *Uploads) Dir() string { return u.dir }

// Save sniffs the content type, rejects anything that is not an image and
// returns the image reference to store on the product.
func (u *Uploads) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) > maxImageSize {
		return "", ErrInvalidImage
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", ErrInvalidImage
	}

	name := uuid.NewString() + mt.Extension()
	if err := os.WriteFile(filepath.Join(u.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return UploadsPrefix + "/" + name, nil
}
