package storage

import (
	"context"
	"errors"
	"io"
)

const (
	// SpotImagesFolder is where spot pictures are stored.
	SpotImagesFolder = "musa/spots"
	// MaxImageSize is the largest accepted upload in bytes.
	MaxImageSize int64 = 5 << 20
)

var (
	ErrUnsupportedImage = errors.New("unsupported image type, allowed: jpg, jpeg, png, gif, webp")
	ErrImageTooLarge    = errors.New("image exceeds the 5MB limit")
)

// ImageUploader stores images and returns their public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, file io.Reader, filename string, size int64, folder string) (string, error)
}
