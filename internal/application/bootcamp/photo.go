package bootcamp

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

type Photo struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

var imageExt = map[string]string{
	"image/jpeg": "jpeg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// UploadBootcampPhoto stores an image for the bootcamp and records where it
// lives. Returns the new image value.
func (s *Service) UploadBootcampPhoto(ctx context.Context, actor domain.User, id string, p Photo) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(p.ContentType))
	ext, ok := imageExt[ct]
	if !ok {
		return "", domain.ErrInvalidUpload("please upload an image file")
	}
	if p.Size <= 0 {
		return "", domain.ErrInvalidUpload("empty file")
	}
	if p.Size > s.maxUploadBytes {
		return "", domain.ErrInvalidUpload(fmt.Sprintf("please upload an image smaller than %d bytes", s.maxUploadBytes))
	}

	b, err := s.owned(ctx, actor, id)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("bootcamp_%s.%s", b.ID, ext)
	image, err := s.images.Put(ctx, key, ct, io.LimitReader(p.Body, s.maxUploadBytes), p.Size)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetImage(ctx, b.ID, image); err != nil {
		return "", err
	}
	return image, nil
}
