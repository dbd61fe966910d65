package service

import (
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"

	apperrors "github.com/hungrynow/hungrynow/pkg/errors"
)

// MaxImageBytes caps an uploaded image.
const MaxImageBytes = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Image is a stored upload.
type Image struct {
	ContentType string
	Data        []byte
}

// ImageStore keeps uploaded images in memory and names them by a random
// id, so URLs cannot be guessed from the original filename.
type ImageStore struct {
	mu     sync.RWMutex
	images map[string]Image
}

// NewImageStore creates an empty image store.
func NewImageStore() *ImageStore {
	return &ImageStore{images: make(map[string]Image)}
}

// Save stores data and returns the name it is served under. The content
// type is sniffed from the bytes; anything but a common image format is
// rejected.
func (s *ImageStore) Save(data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperrors.InvalidInput("image is empty")
	}
	if len(data) > MaxImageBytes {
		return "", apperrors.InvalidInput("image must be at most 5 MB")
	}
	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", apperrors.InvalidInput("only JPEG, PNG, GIF and WebP images are accepted")
	}

	name := uuid.New().String() + ext
	s.mu.Lock()
	s.images[name] = Image{ContentType: contentType, Data: data}
	s.mu.Unlock()
	return name, nil
}

// Get returns a stored image.
func (s *ImageStore) Get(name string) (Image, error) {
	name = path.Base(strings.TrimSpace(name))
	s.mu.RLock()
	img, ok := s.images[name]
	s.mu.RUnlock()
	if !ok {
		return Image{}, apperrors.NotFound("image", name)
	}
	return img, nil
}
