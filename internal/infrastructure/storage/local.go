package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

// LocalImageStore writes photos under a directory served at URLPrefix.
type LocalImageStore struct {
	dir       string
	urlPrefix string
}

func NewLocalImageStore(dir, urlPrefix string) *LocalImageStore {
	return &LocalImageStore{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

func (s *LocalImageStore) Dir() string { return s.dir }

// Put writes to a temp file and renames it into place so readers never see a
// partial image. An existing file with the same key is replaced.
func (s *LocalImageStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", domain.ErrInvalidUpload("invalid file name")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", domain.ErrStorageUnavailable(err)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", domain.ErrStorageUnavailable(err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", domain.ErrStorageUnavailable(err)
	}
	if size > 0 && n != size {
		return "", domain.ErrInvalidUpload(fmt.Sprintf("expected %d bytes, got %d", size, n))
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, key)); err != nil {
		return "", domain.ErrStorageUnavailable(err)
	}
	return s.urlPrefix + "/" + key, nil
}
