package blobstore

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/envatex/envatex-api/config"
	"github.com/pkg/errors"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// SFTPStore pushes objects to a remote host over SFTP. The remote
// directory is expected to be exposed by a separate HTTP server under
// the configured public URL.
type SFTPStore struct {
	cfg config.BlobstoreConfig
}

func NewSFTPStore(cfg config.BlobstoreConfig) *SFTPStore {
	if cfg.SftpPort == 0 {
		cfg.SftpPort = 22
	}
	return &SFTPStore{cfg: cfg}
}

func (s *SFTPStore) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	addr := fmt.Sprintf("%s:%d", s.cfg.SftpHost, s.cfg.SftpPort)
	sshConfig := &ssh.ClientConfig{
		User: s.cfg.SftpUser,
		Auth: []ssh.AuthMethod{
			ssh.Password(s.cfg.SftpPass),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec
	}
	conn, err := ssh.Dial("tcp", addr, sshConfig)
	if err != nil {
		return "", errors.Wrap(err, "blobstore: sftp dial")
	}
	defer conn.Close()

	client, err := sftp.NewClient(conn)
	if err != nil {
		return "", errors.Wrap(err, "blobstore: sftp session")
	}
	defer client.Close()

	remote := path.Join(s.cfg.SftpDir, name)
	if err := client.MkdirAll(s.cfg.SftpDir); err != nil {
		return "", errors.Wrap(err, "blobstore: sftp mkdir")
	}
	f, err := client.Create(remote)
	if err != nil {
		return "", errors.Wrap(err, "blobstore: sftp create")
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = client.Remove(remote)
		return "", errors.Wrap(err, "blobstore: sftp write")
	}
	if err := f.Close(); err != nil {
		_ = client.Remove(remote)
		return "", errors.Wrap(err, "blobstore: sftp close")
	}
	return fmt.Sprintf("%s/%s", s.cfg.PublicURL, name), nil
}
