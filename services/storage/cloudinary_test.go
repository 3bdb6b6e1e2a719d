package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImage(t *testing.T) {
	assert.NoError(t, ValidateImage("mural.JPG", 1024))
	assert.NoError(t, ValidateImage("poster.webp", MaxImageSize))
	assert.ErrorIs(t, ValidateImage("notes.pdf", 1024), ErrUnsupportedImage)
	assert.ErrorIs(t, ValidateImage("noext", 1024), ErrUnsupportedImage)
	assert.ErrorIs(t, ValidateImage("big.png", MaxImageSize+1), ErrImageTooLarge)
}
