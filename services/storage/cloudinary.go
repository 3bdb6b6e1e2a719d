package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"musa/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

var allowedImageTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// CloudinaryStorage implements ImageUploader using Cloudinary.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStorage(cfg *config.Config) (*CloudinaryStorage, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, errors.New("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

// ValidateImage checks extension and size of an upload.
func ValidateImage(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageTypes[ext] {
		return ErrUnsupportedImage
	}
	if size > MaxImageSize {
		return ErrImageTooLarge
	}
	return nil
}

// UploadImage uploads the image into folder and returns its secure URL.
func (s *CloudinaryStorage) UploadImage(ctx context.Context, file io.Reader, filename string, size int64, folder string) (string, error) {
	if err := ValidateImage(filename, size); err != nil {
		return "", err
	}

	overwrite := false
	params := uploader.UploadParams{
		PublicID:     uuid.NewString(),
		Folder:       folder,
		Overwrite:    &overwrite,
		ResourceType: "image",
	}
	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if result.SecureURL == "" {
		return "", errors.New("cloudinary returned no url")
	}
	return result.SecureURL, nil
}
