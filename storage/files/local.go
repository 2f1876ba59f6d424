// Package files implements the upload file store on the local filesystem.
package files

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
)

// Store writes uploaded files under a fixed directory and hands back the
// public path they are served from.
type Store struct {
	dir       string
	urlPrefix string
}

func NewStore(dir, urlPrefix string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating upload dir %s", dir)
	}
	return &Store{dir: dir, urlPrefix: urlPrefix}, nil
}

func (s *Store) Save(ctx context.Context, name string, src multipart.File) (string, error) {
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", errors.Wrapf(err, "creating %s", name)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", errors.Wrapf(err, "writing %s", name)
	}
	return path.Join(s.urlPrefix, name), nil
}

func (s *Store) Remove(ctx context.Context, url string) error {
	err := os.Remove(filepath.Join(s.dir, path.Base(url)))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing %s", url)
	}
	return nil
}
