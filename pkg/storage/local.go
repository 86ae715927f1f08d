package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/foodnest/foodnest/config"
)

// localDisk stores objects under a root directory and serves them from
// STORAGE_URL. Intended for development only.
type localDisk struct {
	root    string
	baseURL string
}

func newLocalDisk() (*localDisk, error) {
	root := config.StorageLocalRoot()
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage/local: mkdir %s: %w", root, err)
	}
	return &localDisk{
		root:    root,
		baseURL: strings.TrimRight(config.StorageURL(), "/"),
	}, nil
}

func (d *localDisk) Put(_ context.Context, path string, content io.Reader) error {
	full := filepath.Join(d.root, filepath.FromSlash(strings.TrimLeft(path, "/")))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir for %s: %w", path, err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("storage/local: create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return fmt.Errorf("storage/local: write %s: %w", path, err)
	}
	return nil
}

func (d *localDisk) Delete(_ context.Context, path string) error {
	full := filepath.Join(d.root, filepath.FromSlash(strings.TrimLeft(path, "/")))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage/local: delete %s: %w", path, err)
	}
	return nil
}

func (d *localDisk) URL(path string) string {
	return d.baseURL + "/" + strings.TrimLeft(path, "/")
}
