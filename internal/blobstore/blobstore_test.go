package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/envatex/envatex-api/config"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePut(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, "/uploads")

	url, err := s.Put(context.Background(), "img.png", strings.NewReader("payload"))
	require.NoError(t, err)
	require.Equal(t, "/uploads/img.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "img.png"))
	require.NoError(t, err)
	require.Equal(t, "payload", string(data))
}

func TestLocalStoreDefaultPublicURL(t *testing.T) {
	s := NewLocalStore(t.TempDir(), "")
	url, err := s.Put(context.Background(), "a.jpg", strings.NewReader("x"))
	require.NoError(t, err)
	require.Equal(t, "/uploads/a.jpg", url)
}

func TestNewStoreSelection(t *testing.T) {
	s, err := NewStore(config.BlobstoreConfig{Type: "local"}, t.TempDir())
	require.NoError(t, err)
	require.IsType(t, &LocalStore{}, s)

	s, err = NewStore(config.BlobstoreConfig{Type: "sftp"}, t.TempDir())
	require.NoError(t, err)
	require.IsType(t, &SFTPStore{}, s)

	_, err = NewStore(config.BlobstoreConfig{Type: "carrier-pigeon"}, t.TempDir())
	require.Error(t, err)
}
