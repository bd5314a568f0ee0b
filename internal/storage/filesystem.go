package storage

import (
	"context"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
)

// A Filesystem stores images in a local directory served by the server.
type Filesystem struct {
	Path    string
	BaseURL string // Public URL of the served directory
}

// NewFilesystem returns a filesystem store, creating the directory if needed.
func NewFilesystem(dir, baseURL string) (*Filesystem, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, errors.Wrap(err, "could not parse base url")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "could not create image directory")
	}
	return &Filesystem{Path: dir, BaseURL: baseURL}, nil
}

// Put implements Store.
func (fs *Filesystem) Put(ctx context.Context, name, _ string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name = filepath.Base(filepath.Clean("/" + name))
	filename := filepath.Join(fs.Path, name)

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", errors.Wrap(err, "could not create image file")
	}

	if _, err = io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(filename)
		return "", errors.Wrap(err, "could not write image file")
	}
	if err = f.Close(); err != nil {
		return "", errors.Wrap(err, "could not write image file")
	}

	u, _ := url.Parse(fs.BaseURL) // Checked by NewFilesystem
	u.Path = path.Join(u.Path, name)
	return u.String(), nil
}
