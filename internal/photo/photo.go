// Package photo provides photo loading and validation for the measurement
// canvas.
package photo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"

	_ "golang.org/x/image/webp"
)

// MaxFileSize is the largest photo accepted, in bytes.
const MaxFileSize = 25 << 20 // 25 MB

// ErrInvalidFile indicates a file that was rejected before decoding: wrong
// content type or oversized. Surfaced to the user as a blocking alert; the
// session is untouched.
var ErrInvalidFile = errors.New("invalid image file")

// ErrImageDecode indicates a file that passed validation but whose contents
// could not be decoded.
var ErrImageDecode = errors.New("unreadable image")

// acceptedTypes are the sniffed MIME types allowed through to the decoder.
var acceptedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Layer holds a loaded photo and its display settings.
type Layer struct {
	Path    string      // Original file path
	Image   image.Image // Decoded pixel data
	Format  string      // Decoder format name ("jpeg", "png", "webp")
	Width   int         // Pixel width
	Height  int         // Pixel height
	Visible bool
	Opacity float64 // 0.0 - 1.0
}

// Load reads, validates, and decodes a photo. Validation happens before
// decoding: the file must be at most MaxFileSize bytes and its sniffed
// content type must be JPEG, PNG, or WebP. Failures wrap ErrInvalidFile or
// ErrImageDecode so the UI can pick the right alert text.
func Load(path string) (*Layer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, maximum is %d",
			ErrInvalidFile, path, info.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	contentType := http.DetectContentType(data)
	if !acceptedTypes[contentType] {
		return nil, fmt.Errorf("%w: unsupported content type %s", ErrInvalidFile, contentType)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	bounds := img.Bounds()
	return &Layer{
		Path:    path,
		Image:   img,
		Format:  format,
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		Visible: true,
		Opacity: 1.0,
	}, nil
}

// SupportedExtensions returns the file extensions offered in open dialogs.
func SupportedExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".webp"}
}
