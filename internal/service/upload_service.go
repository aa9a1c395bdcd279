package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

var (
	ErrUploadNotImage = errors.New("only image files can be uploaded")
	ErrUploadTooLarge = errors.New("uploaded file is too large")
	ErrUploadEmpty    = errors.New("uploaded file is empty")
)

// DefaultMaxUploadBytes caps a single upload.
const DefaultMaxUploadBytes = 10 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadedImage describes a stored upload.
type UploadedImage struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// UploadService stores images on local disk and serves them under urlPath.
type UploadService struct {
	dir      string
	urlPath  string
	maxBytes int64
	now      func() time.Time
}

// NewUploadService builds an UploadService.
func NewUploadService(dir, urlPath string, maxBytes int64) *UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	urlPath = "/" + strings.Trim(strings.TrimSpace(urlPath), "/")
	return &UploadService{dir: dir, urlPath: urlPath, maxBytes: maxBytes, now: time.Now}
}

// Dir returns the storage directory.
func (s *UploadService) Dir() string {
	return s.dir
}

// SaveFile stores a multipart upload.
func (s *UploadService) SaveFile(fh *multipart.FileHeader) (*UploadedImage, error) {
	if fh.Size > s.maxBytes {
		return nil, ErrUploadTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return s.Save(f)
}

// Save sniffs the content, probes pixel dimensions and writes the file as
// YYYYMMDD-<uuid>.<ext>. The extension follows the detected type, never the
// client's file name.
func (s *UploadService) Save(r io.Reader) (*UploadedImage, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrUploadEmpty
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrUploadTooLarge
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, ErrUploadNotImage
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUploadNotImage
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	filename := fmt.Sprintf("%s-%s%s", s.now().Format("20060102"), uuid.NewString(), ext)
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	return &UploadedImage{
		URL:         path.Join(s.urlPath, filename),
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}
