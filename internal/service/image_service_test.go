package service

import (
	"context"
	"hotel-booking/pkg/logger"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageService_SaveHotelImage(t *testing.T) {
	dir := t.TempDir()
	s := NewImageService(logger.NewNop(), dir)

	path, err := s.SaveHotelImage(context.Background(), 12, strings.NewReader("RIFF....WEBP"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "images", "12.webp"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "RIFF....WEBP", string(b))
}
