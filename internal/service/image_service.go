package service

import (
	"context"
	"fmt"
	"hotel-booking/pkg/logger"
	"io"
	"os"
	"path/filepath"
)

type ImageService interface {
	// SaveHotelImage stores src as images/<name>.webp under the static dir.
	SaveHotelImage(ctx context.Context, name int, src io.Reader) (string, error)
}

type imageService struct {
	log       *logger.Logger
	staticDir string
}

func NewImageService(log *logger.Logger, staticDir string) ImageService {
	return &imageService{log: log, staticDir: staticDir}
}

func (s *imageService) SaveHotelImage(ctx context.Context, name int, src io.Reader) (string, error) {
	dir := filepath.Join(s.staticDir, "images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create image dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%d.webp", name))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, src)
	if err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	s.log.InfoContext(ctx, "Hotel image saved", logger.StringField("path", path), logger.IntField("bytes", int(written)))
	return path, nil
}
