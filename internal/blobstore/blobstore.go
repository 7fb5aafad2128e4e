package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/envatex/envatex-api/config"
	"github.com/pkg/errors"
)

// Store persists an uploaded file payload and returns the durable URL
// under which clients can fetch it. Implementations must not leave a
// partial object behind on error.
type Store interface {
	Put(ctx context.Context, name string, r io.Reader) (string, error)
}

// NewStore builds the blob store selected by configuration.
func NewStore(cfg config.BlobstoreConfig, workdir string) (Store, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStore(path.Join(workdir, "uploads"), cfg.PublicURL), nil
	case "sftp":
		return NewSFTPStore(cfg), nil
	default:
		return nil, errors.Errorf("unknown blobstore type %q", cfg.Type)
	}
}

// LocalStore writes objects under a directory served statically by the
// web server.
type LocalStore struct {
	dir       string
	publicURL string
}

func NewLocalStore(dir, publicURL string) *LocalStore {
	if publicURL == "" {
		publicURL = "/uploads"
	}
	return &LocalStore{dir: dir, publicURL: publicURL}
}

func (s *LocalStore) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", errors.Wrap(err, "blobstore: create uploads dir")
	}
	dst := filepath.Join(s.dir, name)
	f, err := os.Create(dst)
	if err != nil {
		return "", errors.Wrap(err, "blobstore: create file")
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", errors.Wrap(err, "blobstore: write file")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", errors.Wrap(err, "blobstore: close file")
	}
	return fmt.Sprintf("%s/%s", s.publicURL, name), nil
}
