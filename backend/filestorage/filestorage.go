// Package filestorage keeps uploaded images.
package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidURL = errors.New("url does not point to stored file")

type Client interface {
	// Upload stores r under the asset and returns the public URL of the file.
	Upload(ctx context.Context, r io.Reader, filename, assetType, identifier string) (string, error)
	Delete(ctx context.Context, url string) error
	// Asset returns the asset type and identifier a stored file was uploaded
	// for.
	Asset(url string) (assetType, identifier string, err error)
}

// LocalClient stores files below a directory served at baseURL.
type LocalClient struct {
	dir     string
	baseURL string
}

func NewLocalClient(dir, baseURL string) *LocalClient {
	return &LocalClient{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (c *LocalClient) Upload(ctx context.Context, r io.Reader, filename, assetType, identifier string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel := path.Join(
		strings.ToLower(assetType),
		filepath.Base(identifier),
		uuid.NewString()+strings.ToLower(filepath.Ext(filename)),
	)
	target := filepath.Join(c.dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create asset directory: %w", err)
	}

	f, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", rel, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("write %s: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", rel, err)
	}
	return c.baseURL + "/" + rel, nil
}

// Delete removes the file behind url. A file that is already gone is not an
// error.
func (c *LocalClient) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean, err := c.relPath(url)
	if err != nil {
		return err
	}

	err = os.Remove(filepath.Join(c.dir, filepath.FromSlash(clean)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", clean, err)
	}
	return nil
}

func (c *LocalClient) Asset(url string) (string, string, error) {
	clean, err := c.relPath(url)
	if err != nil {
		return "", "", err
	}
	parts := strings.Split(clean, "/")
	if len(parts) != 3 {
		return "", "", ErrInvalidURL
	}
	return strings.ToUpper(parts[0]), parts[1], nil
}

// relPath returns the slash separated path of url below the storage root.
func (c *LocalClient) relPath(url string) (string, error) {
	rel, ok := strings.CutPrefix(url, c.baseURL+"/")
	if !ok || rel == "" {
		return "", ErrInvalidURL
	}
	clean := path.Clean(rel)
	if clean == "." || strings.HasPrefix(clean, "..") || path.IsAbs(clean) {
		return "", ErrInvalidURL
	}
	return clean, nil
}
